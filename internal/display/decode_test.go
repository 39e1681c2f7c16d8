package display

import (
	"testing"

	"gocv.io/x/gocv"
)

func encodedTestImage(t *testing.T, ext gocv.FileExt) []byte {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(10, 20, 30, 0), 24, 32, gocv.MatTypeCV8UC3)
	defer mat.Close()

	buf, err := gocv.IMEncode(ext, mat)
	if err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	defer buf.Close()

	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data
}

func TestDecode_ValidImages(t *testing.T) {
	for _, ext := range []gocv.FileExt{gocv.PNGFileExt, gocv.JPEGFileExt} {
		mat, err := decode(encodedTestImage(t, ext))
		if err != nil {
			t.Fatalf("decode(%s) failed: %v", ext, err)
		}
		if mat.Cols() != 32 || mat.Rows() != 24 {
			t.Errorf("decode(%s) returned %dx%d, expected 32x24", ext, mat.Cols(), mat.Rows())
		}
		mat.Close()
	}
}

func TestDecode_Garbage(t *testing.T) {
	_, err := decode([]byte("definitely not an image"))
	if err == nil {
		t.Fatal("Expected error for garbage input")
	}
}

func TestDecode_Empty(t *testing.T) {
	if _, err := decode(nil); err == nil {
		t.Fatal("Expected error for empty input")
	}
}
