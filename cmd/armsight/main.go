package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/armlab/armsight/internal/analysis"
	"github.com/armlab/armsight/internal/detector"
	"github.com/armlab/armsight/internal/store"
)

func main() {
	videoPath := flag.String("video", "", "path to the match video to analyze")
	person := flag.String("person", "left", "which subject to analyze: left or right")
	stride := flag.Int("stride", 0, "sample every n-th frame (0 = default)")
	dbPath := flag.String("db", "", "sqlite database to persist the report to (optional)")
	asJSON := flag.Bool("json", false, "print the full report as JSON")
	timeout := flag.Duration("timeout", 10*time.Minute, "maximum analysis duration")
	flag.Parse()

	if *videoPath == "" {
		fmt.Fprintln(os.Stderr, "usage: armsight -video match.mp4 [-person left|right]")
		os.Exit(2)
	}

	identity := analysis.IdentityLeft
	if strings.EqualFold(*person, "right") {
		identity = analysis.IdentityRight
	}

	cfg := analysis.DefaultConfig()
	if *stride > 0 {
		cfg.Stride = *stride
	}

	det := newDetector()
	defer det.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := analysis.AnalyzeVideo(ctx, *videoPath, det, identity)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	if report.Error != "" {
		fmt.Printf("Analysis unavailable: %s\n", report.Error)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Fatalf("Failed to encode report: %v", err)
		}
	} else {
		printReport(report)
	}

	if *dbPath != "" {
		saveReport(*dbPath, filepath.Base(*videoPath), identity, report)
	}
}

// newDetector tries the MediaPipe pose service first and falls back to the
// mock detector when the Python service is unavailable.
func newDetector() detector.Detector {
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		log.Println("Using MediaPipe pose detection")
		return mp
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		return detector.NewMockDetector()
	}
}

func saveReport(dbPath, videoName string, identity analysis.Identity, report *analysis.AnalysisReport) {
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to open report store: %v", err)
	}
	defer st.Close()

	id, err := st.Reports().Create(videoName, identity, report)
	if err != nil {
		log.Fatalf("Failed to save report: %v", err)
	}
	fmt.Printf("Report saved: %s\n", id)
}

func printReport(r *analysis.AnalysisReport) {
	fmt.Printf("Subject:   %s\n", r.AnalyzedPerson.Label)
	fmt.Printf("Technique: %s (%.0f%% confidence)\n", r.Technique.Primary, r.Technique.Confidence*100)
	fmt.Printf("Frames:    %d analyzed, %.1fs of video\n", r.FramesAnalyzed, r.Duration)

	fmt.Println("\nRisk findings:")
	if len(r.Risks) == 0 {
		fmt.Println("  none")
	}
	for _, risk := range r.Risks {
		fmt.Printf("  [%s] %s: %s\n", risk.Level, risk.Title, risk.Description)
	}

	fmt.Println("\nStrength:")
	fmt.Printf("  Back Pressure: %s (%.1f/10)\n", r.Strength.BackPressure.Grade, r.Strength.BackPressure.Score)
	fmt.Printf("  Wrist Control: %s (%.1f/10)\n", r.Strength.WristControl.Grade, r.Strength.WristControl.Score)
	fmt.Printf("  Side Pressure: %s (%.1f/10)\n", r.Strength.SidePressure.Grade, r.Strength.SidePressure.Score)
	fmt.Printf("  %s\n", r.Strength.Summary)

	fmt.Println("\nRecommendations:")
	for i, rec := range r.Recommendations {
		fmt.Printf("  %d. %s\n", i+1, rec)
	}
}
