package noisereduce

// classifyBand reports whether band looks like noise in the ring's center
// frame, examining the neighboring frames named by the configured method.
//
// The "new sensitivity" comparisons use mult, the natural-log-converted
// form of the configured NewSensitivity (see Configuration.rebuild): the
// reference engine stores the converted value under the same field it reads
// back from during classification, so the comparison always runs against
// the converted quantity, not the raw dB-like input.
func classifyBand(cfg *Configuration, stats *Statistics, ring *Ring, band int) bool {
	switch cfg.method {
	case Old:
		min := ring.Slot(0).Power[band]
		for i := 1; i < ring.Len(); i++ {
			if p := ring.Slot(i).Power[band]; p < min {
				min = p
			}
		}
		return min <= cfg.sensitivityFactor*stats.NoiseThreshold()[band]

	case Median:
		switch cfg.nWindowsToExamine {
		case 3:
			return classifySecondGreatest(cfg, stats, ring, band)
		case 5:
			return classifyThirdGreatest(cfg, stats, ring, band)
		default:
			// Unreachable: Configuration.Validate rejects any other size.
			return true
		}

	case SecondGreatest:
		return classifySecondGreatest(cfg, stats, ring, band)

	default:
		return true
	}
}

func classifySecondGreatest(cfg *Configuration, stats *Statistics, ring *Ring, band int) bool {
	var greatest, second float64
	for i := 0; i < cfg.nWindowsToExamine; i++ {
		power := ring.Slot(i).Power[band]
		switch {
		case power >= greatest:
			second, greatest = greatest, power
		case power >= second:
			second = power
		}
	}
	return second <= cfg.mult*stats.Means()[band]
}

func classifyThirdGreatest(cfg *Configuration, stats *Statistics, ring *Ring, band int) bool {
	var greatest, second, third float64
	for i := 0; i < cfg.nWindowsToExamine; i++ {
		power := ring.Slot(i).Power[band]
		switch {
		case power >= greatest:
			third, second, greatest = second, greatest, power
		case power >= second:
			third, second = second, power
		case power >= third:
			third = power
		}
	}
	return third <= cfg.mult*stats.Means()[band]
}
