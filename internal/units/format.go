package units

import (
	"math"
	"strconv"
)

// Smallest displayable magnitude. Scaled amounts below this are clamped up
// to it rather than shown as a meaningless sliver.
const minDisplayAmount = 1.0 / 32.0

const sigDigits = 3

// FormatScaledAmount renders a scaled ingredient amount as a compact,
// human-friendly decimal string. Non-finite input renders as "".
func FormatScaledAmount(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ""
	}
	if amount != 0 && math.Abs(amount) < minDisplayAmount {
		amount = math.Copysign(minDisplayAmount, amount)
	}
	if amount == 0 {
		return "0"
	}

	// Round to three significant digits.
	exponent := math.Floor(math.Log10(math.Abs(amount)))
	scale := math.Pow(10, float64(sigDigits-1)-exponent)
	rounded := math.Round(amount*scale) / scale

	// Quantities are never displayed below millis; this also squashes any
	// float noise left by the significant-digit step.
	if rounded != math.Trunc(rounded) {
		rounded = math.Round(rounded*1000) / 1000
	}

	// 'f' with precision -1 never produces exponent notation and already
	// omits trailing zeros.
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
