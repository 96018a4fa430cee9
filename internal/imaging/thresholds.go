package imaging

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/anthonynsimon/bild/blur"

	"github.com/ironsheep/plate-prep/internal/config"
)

// Indexes of the candidates returned by ProduceThresholds. The order never
// changes, so downstream code may address a variant by index.
const (
	ThresholdWolfLow  = iota // Wolf-Jolion, wolf_window_low / wolf_k_low
	ThresholdWolfHigh        // Wolf-Jolion, wolf_window_high / wolf_k_high
	ThresholdSauvola         // Sauvola, sauvola_window / sauvola_k
	ThresholdAdaptive        // adaptive Gaussian, adaptive_block_size / adaptive_c
	ThresholdOtsu            // global Otsu

	// ThresholdCount is the number of candidates ProduceThresholds returns.
	ThresholdCount
)

var thresholdNames = [ThresholdCount]string{
	ThresholdWolfLow:  "wolf-low",
	ThresholdWolfHigh: "wolf-high",
	ThresholdSauvola:  "sauvola",
	ThresholdAdaptive: "adaptive",
	ThresholdOtsu:     "otsu",
}

// ThresholdName returns a short name for the candidate at index i.
func ThresholdName(i int) string {
	if i < 0 || i >= ThresholdCount {
		return "unknown"
	}
	return thresholdNames[i]
}

// ProduceThresholds renders ThresholdCount binarized candidates of a plate
// image so that character segmentation can keep whichever isolates the
// characters best.
//
// Parameters:
//   - img: The plate region. Multi-channel images are converted to gray with
//     fixed BT.601 weights; the input itself is never touched.
//   - cfg: Window sizes and sensitivities of each pass. See config.Config.
//
// Returns:
//   - []*image.Gray: ThresholdCount independent images, indexed by the
//     Threshold* constants, with bounds starting at (0,0). Every candidate is
//     inverted so that dark characters become white (255) on black (0).
//   - error: Non-nil, wrapping ErrInvalidInput, if the image is empty or the
//     configuration is malformed. No partial output is returned.
//
// # Passes
//
//  1. Wolf-Jolion with the low window and k
//  2. Wolf-Jolion with the high window and k
//  3. Sauvola
//  4. Adaptive Gaussian mean
//  5. Global Otsu
//
// A flat input yields flat candidates: each is entirely 0 or entirely 255.
func ProduceThresholds(img image.Image, cfg config.Config) ([]*image.Gray, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gray, err := ToGray(img)
	if err != nil {
		return nil, fmt.Errorf("produce thresholds: %w", err)
	}

	start := time.Now()

	if cfg.PreBlurRadius > 0 {
		gray = grayFromRGBA(blur.Gaussian(gray, cfg.PreBlurRadius))
	}

	thresholds := make([]*image.Gray, ThresholdCount)
	thresholds[ThresholdWolfLow] = Binarize(gray, WolfJolion, cfg.WolfWindowLow, cfg.WolfWindowLow, cfg.WolfKLow)
	thresholds[ThresholdWolfHigh] = Binarize(gray, WolfJolion, cfg.WolfWindowHigh, cfg.WolfWindowHigh, cfg.WolfKHigh)
	thresholds[ThresholdSauvola] = Binarize(gray, Sauvola, cfg.SauvolaWindow, cfg.SauvolaWindow, cfg.SauvolaK)
	thresholds[ThresholdAdaptive] = AdaptiveThreshold(gray, cfg.AdaptiveBlockSize, cfg.AdaptiveC)
	thresholds[ThresholdOtsu] = OtsuThreshold(gray)

	for _, t := range thresholds {
		invert(t)
	}

	if cfg.DebugTiming {
		log.Printf("Produce thresholds time: %s", time.Since(start))
	}

	if cfg.DebugGeneral {
		labelled := make([]image.Image, len(thresholds))
		for i, t := range thresholds {
			labelled[i] = AddLabel(t, ThresholdName(i))
		}
		dashboard := DrawImageDashboard(labelled, ImageTypeRGBA, 3)
		if err := DisplayImage(cfg, "thresholds", dashboard); err != nil {
			log.Printf("Failed to write threshold dashboard: %v", err)
		}
	}

	return thresholds, nil
}
