package main

import (
	"flag"
	"fmt"
	"log"

	"imageviewer/internal/config"
	"imageviewer/internal/repository/sqlite"
)

func main() {
	cfg := config.Load()
	dbPath := flag.String("db", cfg.DBPath, "Database path")
	limit := flag.Int("limit", 20, "Number of snapshots to list (0 = all)")
	clearHistory := flag.Bool("clear", false, "Delete the whole snapshot history")
	flag.Parse()

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := sqlite.NewSnapshotRepository(db)

	if *clearHistory {
		if err := repo.DeleteAll(); err != nil {
			log.Fatalf("Failed to clear history: %v", err)
		}
		fmt.Println("✅ Snapshot history cleared")
		return
	}

	fmt.Printf("Output path: %s\n", cfg.OutputPath)

	latest, err := repo.GetLatest()
	if err != nil {
		log.Fatalf("Failed to read latest snapshot: %v", err)
	}
	if latest == nil {
		fmt.Println("No snapshots saved yet")
		return
	}
	fmt.Printf("Last saved: %s (%d bytes from %s)\n\n", latest.Timestamp.Format("2006-01-02 15:04:05"), latest.FileSize, latest.SourcePath)

	snapshots, err := repo.GetAll(*limit)
	if err != nil {
		log.Fatalf("Failed to read snapshots: %v", err)
	}

	fmt.Printf("Latest %d snapshot(s):\n", len(snapshots))
	for _, s := range snapshots {
		fmt.Printf("   %s  %-30s %8d bytes  (from %s)\n", s.Timestamp.Format("2006-01-02 15:04:05"), s.FilePath, s.FileSize, s.SourcePath)
	}

	stats, err := repo.GetStats()
	if err == nil {
		fmt.Printf("\n📊 Snapshot Statistics:\n")
		fmt.Printf("   Total snapshots: %d\n", stats.TotalSnapshots)
		fmt.Printf("   Total size: %d bytes\n", stats.TotalSizeBytes)
		fmt.Printf("   Per source:\n")
		for source, count := range stats.PerSource {
			fmt.Printf("      - %s: %d\n", source, count)
		}
	}
}
