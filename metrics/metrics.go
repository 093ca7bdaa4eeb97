package metrics

import (
	"context"
	"math/bits"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/sboxkit/sbox"
)

// Report bundles every strength measure computed over one S-box
// snapshot. Reports are recomputed wholesale when the S-box changes,
// never patched in place.
type Report struct {
	NL           int
	SAC          float64
	SACMatrix    [8][8]float64
	BICNL        int
	BICSAC       float64
	BICSACMatrix [8][8]float64
	LAP          float64
	DAP          float64
}

func parity(b byte) int {
	return bits.OnesCount8(b) & 1
}

// walshMaxAbs returns the maximum absolute Walsh-Hadamard coefficient
// of a Boolean function given as a 256-entry 0/1 truth table, scanning
// all 256 linear masks.
func walshMaxAbs(tt *[sbox.Size]int) int {
	maxAbs := 0
	for w := 0; w < sbox.Size; w++ {
		sum := 0
		for x := 0; x < sbox.Size; x++ {
			if parity(byte(x)&byte(w)) == tt[x] {
				sum++
			} else {
				sum--
			}
		}
		if sum < 0 {
			sum = -sum
		}
		if sum > maxAbs {
			maxAbs = sum
		}
	}
	return maxAbs
}

// booleanNonlinearity converts the spectral peak to a distance from
// the nearest affine function: 128 - max|W|/2.
func booleanNonlinearity(tt *[sbox.Size]int) int {
	return 128 - walshMaxAbs(tt)/2
}

// componentTable extracts one output bit of the S-box as a truth
// table.
func componentTable(s sbox.SBox, bit int) [sbox.Size]int {
	var tt [sbox.Size]int
	for x := 0; x < sbox.Size; x++ {
		tt[x] = int(s[x]>>bit) & 1
	}
	return tt
}

// Nonlinearity computes NL: the minimum nonlinearity across the eight
// output-bit component functions. The components are independent and
// evaluated in parallel.
func Nonlinearity(ctx context.Context, s sbox.SBox) (int, error) {
	var results [8]int
	var wg sync.WaitGroup
	for bit := 0; bit < 8; bit++ {
		wg.Add(1)
		go func(bit int) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			tt := componentTable(s, bit)
			results[bit] = booleanNonlinearity(&tt)
		}(bit)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	min := results[0]
	for _, r := range results[1:] {
		if r < min {
			min = r
		}
	}
	return min, nil
}

// SAC computes the strict avalanche criterion: for every (input bit,
// output bit) pair, the probability that flipping the input bit flips
// the output bit, averaged over all 64 pairs. It also returns the raw
// 8x8 per-pair probability matrix. The ideal value is 0.5.
func SAC(ctx context.Context, s sbox.SBox) (float64, [8][8]float64, error) {
	var matrix [8][8]float64
	total := 0.0
	for in := 0; in < 8; in++ {
		if err := ctx.Err(); err != nil {
			return 0, matrix, err
		}
		for out := 0; out < 8; out++ {
			flips := 0
			for x := 0; x < sbox.Size; x++ {
				d := s[x] ^ s[x^(1<<in)]
				flips += int(d>>out) & 1
			}
			p := float64(flips) / sbox.Size
			matrix[in][out] = p
			total += p
		}
	}
	return total / 64, matrix, nil
}

// BICNonlinearity computes BIC-NL: for every distinct pair of output
// bits, the nonlinearity of the XOR of the two component functions;
// the result is the minimum over all 28 pairs.
func BICNonlinearity(ctx context.Context, s sbox.SBox) (int, error) {
	type pair struct{ j, k int }
	var pairs []pair
	for j := 0; j < 8; j++ {
		for k := j + 1; k < 8; k++ {
			pairs = append(pairs, pair{j, k})
		}
	}

	results := make([]int, len(pairs))
	var wg sync.WaitGroup
	for i, p := range pairs {
		wg.Add(1)
		go func(i int, p pair) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			var tt [sbox.Size]int
			for x := 0; x < sbox.Size; x++ {
				tt[x] = parity(s[x] & (1<<p.j | 1<<p.k))
			}
			results[i] = booleanNonlinearity(&tt)
		}(i, p)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	min := results[0]
	for _, r := range results[1:] {
		if r < min {
			min = r
		}
	}
	return min, nil
}

// BICSAC computes the avalanche form of the bit independence
// criterion: for every pair of output bits and every flipped input
// bit, the fraction of inputs whose two flip indicators agree. It
// returns the overall average across all 28x8 combinations and the
// symmetric 8x8 per-pair matrix; the diagonal carries no value since
// a bit has no pair with itself.
func BICSAC(ctx context.Context, s sbox.SBox) (float64, [8][8]float64, error) {
	var matrix [8][8]float64
	total := 0.0
	combos := 0
	for j := 0; j < 8; j++ {
		for k := j + 1; k < 8; k++ {
			if err := ctx.Err(); err != nil {
				return 0, matrix, err
			}
			pairMask := byte(1<<j | 1<<k)
			pairSum := 0.0
			for in := 0; in < 8; in++ {
				agree := 0
				for x := 0; x < sbox.Size; x++ {
					d := s[x] ^ s[x^(1<<in)]
					if parity(d&pairMask) == 0 {
						agree++
					}
				}
				frac := float64(agree) / sbox.Size
				pairSum += frac
				total += frac
				combos++
			}
			matrix[j][k] = pairSum / 8
			matrix[k][j] = matrix[j][k]
		}
	}
	return total / float64(combos), matrix, nil
}

// LAP computes the maximum linear approximation probability: over
// every nonzero input and output mask, the bias |count/256 - 0.5| of
// parity(x & a) == parity(s[x] & b). The full scan covers 255x255
// mask combinations; input masks are partitioned across workers.
func LAP(ctx context.Context, s sbox.SBox) (float64, error) {
	maxBias, err := scanMax(ctx, 1, sbox.Size, func(a int) float64 {
		localMax := 0.0
		for b := 1; b < sbox.Size; b++ {
			count := 0
			for x := 0; x < sbox.Size; x++ {
				if parity(byte(x)&byte(a)) == parity(s[x]&byte(b)) {
					count++
				}
			}
			bias := float64(count)/sbox.Size - 0.5
			if bias < 0 {
				bias = -bias
			}
			if bias > localMax {
				localMax = bias
			}
		}
		return localMax
	})
	return maxBias, err
}

// DAP computes the maximum differential approximation probability:
// for every nonzero input difference, the most likely output
// difference count divided by 256. An output difference of zero is
// counted too; it matters for non-bijective tables.
func DAP(ctx context.Context, s sbox.SBox) (float64, error) {
	return scanMax(ctx, 1, sbox.Size, func(dx int) float64 {
		var counts [sbox.Size]int
		for x := 0; x < sbox.Size; x++ {
			counts[s[x]^s[byte(x)^byte(dx)]]++
		}
		max := 0
		for _, c := range counts {
			if c > max {
				max = c
			}
		}
		return float64(max) / sbox.Size
	})
}

// scanMax evaluates f over [lo, hi) partitioned across NumCPU workers
// and returns the maximum result. Each worker keeps a local extremum;
// the reduction is order-independent. Cancellation is polled once per
// outer index.
func scanMax(ctx context.Context, lo, hi int, f func(i int) float64) (float64, error) {
	n := hi - lo
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	locals := make([]float64, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := lo + w*chunk
		end := start + chunk
		if end > hi {
			end = hi
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if ctx.Err() != nil {
					return
				}
				if v := f(i); v > locals[w] {
					locals[w] = v
				}
			}
		}(w, start, end)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	max := 0.0
	for _, v := range locals {
		if v > max {
			max = v
		}
	}
	return max, nil
}

// CalculateAll computes every measure over one S-box snapshot. A
// cancelled context abandons the remaining work; the partial result
// must be discarded by the caller since it no longer corresponds to
// current state.
func CalculateAll(ctx context.Context, s sbox.SBox) (Report, error) {
	start := time.Now()
	var report Report
	var err error

	if report.NL, err = Nonlinearity(ctx, s); err != nil {
		return Report{}, err
	}
	if report.SAC, report.SACMatrix, err = SAC(ctx, s); err != nil {
		return Report{}, err
	}
	if report.BICNL, err = BICNonlinearity(ctx, s); err != nil {
		return Report{}, err
	}
	if report.BICSAC, report.BICSACMatrix, err = BICSAC(ctx, s); err != nil {
		return Report{}, err
	}
	if report.LAP, err = LAP(ctx, s); err != nil {
		return Report{}, err
	}
	if report.DAP, err = DAP(ctx, s); err != nil {
		return Report{}, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "CalculateAll",
		"package":  "metrics",
		"nl":       report.NL,
		"bic_nl":   report.BICNL,
		"lap":      report.LAP,
		"dap":      report.DAP,
		"elapsed":  time.Since(start).String(),
	}).Debug("Computed S-box metrics")
	return report, nil
}
