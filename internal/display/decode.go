package display

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

var ErrEmptyImage = errors.New("decoded image is empty")

// decode turns encoded image bytes into a BGR matrix. The caller owns the result.
func decode(data []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to decode image: %w", err)
	}
	if mat.Empty() {
		mat.Close()
		return gocv.Mat{}, ErrEmptyImage
	}
	return mat, nil
}
