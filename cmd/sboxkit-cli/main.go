// Package main provides the sboxkit-cli command line interface for
// S-box design, inspection and message encryption.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	sboxkit "github.com/opd-ai/sboxkit"
	"github.com/opd-ai/sboxkit/affine"
	"github.com/opd-ai/sboxkit/metrics"
	"github.com/opd-ai/sboxkit/sbox"
)

const appName = "sboxkit-cli"

func usage() {
	fmt.Fprintf(os.Stderr, `%s - substitution box design toolkit

Usage:
  %s <command> [flags]

Commands:
  generate   Build an S-box from an affine matrix and constant
  invert     Invert an affine matrix over GF(2)
  metrics    Compute strength metrics for a design
  encrypt    Encrypt text under a design and key
  decrypt    Decrypt hex ciphertext under a design and key

Common flags:
  -matrix string    8 matrix rows as 16 hex chars (default: toolkit reference matrix)
  -constant string  affine constant as 2 hex chars (default 63)
  -preset string    named design instead of -matrix/-constant: "aes" or "random"
  -key string       1..16 byte key (encrypt/decrypt)
  -text string      input text (encrypt) or hex ciphertext (decrypt)
  -v                verbose (debug) logging

Examples:
  %s generate -preset aes
  %s metrics -matrix 57abd5ea75ba5dae -constant 63
  %s encrypt -key secret -text "attack at dawn"
`, appName, appName, appName, appName, appName)
}

// defaultConfig is the toolkit's reference design.
var defaultConfig = sbox.Config{
	Matrix:   affine.Matrix{0x57, 0xAB, 0xD5, 0xEA, 0x75, 0xBA, 0x5D, 0xAE},
	Constant: 0x63,
}

type cliFlags struct {
	matrixHex   string
	constantHex string
	preset      string
	key         string
	text        string
	verbose     bool
}

func parseFlags(args []string) (*cliFlags, error) {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	f := &cliFlags{}
	fs.StringVar(&f.matrixHex, "matrix", "", "8 matrix rows as 16 hex chars")
	fs.StringVar(&f.constantHex, "constant", "63", "affine constant as 2 hex chars")
	fs.StringVar(&f.preset, "preset", "", `named design: "aes" or "random"`)
	fs.StringVar(&f.key, "key", "", "1..16 byte key")
	fs.StringVar(&f.text, "text", "", "input text or hex ciphertext")
	fs.BoolVar(&f.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *cliFlags) config() (sbox.Config, error) {
	switch f.preset {
	case "aes":
		return sbox.Config{Matrix: sbox.AESMatrix, Constant: sbox.AESConstant}, nil
	case "random":
		m, err := affine.RandomInvertible()
		if err != nil {
			return sbox.Config{}, err
		}
		return sbox.Config{Matrix: m, Constant: defaultConfig.Constant}, nil
	case "":
	default:
		return sbox.Config{}, fmt.Errorf("unknown preset %q", f.preset)
	}

	cfg := defaultConfig
	if f.matrixHex != "" {
		raw, err := hex.DecodeString(f.matrixHex)
		if err != nil || len(raw) != 8 {
			return sbox.Config{}, fmt.Errorf("-matrix must be 16 hex chars")
		}
		copy(cfg.Matrix[:], raw)
	}
	if f.constantHex != "" {
		raw, err := hex.DecodeString(f.constantHex)
		if err != nil || len(raw) != 1 {
			return sbox.Config{}, fmt.Errorf("-constant must be 2 hex chars")
		}
		cfg.Constant = raw[0]
	}
	return cfg, nil
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	command := os.Args[1]
	if command == "-h" || command == "--help" || command == "help" {
		usage()
		return
	}

	flags, err := parseFlags(os.Args[2:])
	if err != nil {
		os.Exit(2)
	}
	if flags.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	if err := run(command, flags); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func run(command string, flags *cliFlags) error {
	switch command {
	case "generate":
		return runGenerate(flags)
	case "invert":
		return runInvert(flags)
	case "metrics":
		return runMetrics(flags)
	case "encrypt":
		return runEncrypt(flags)
	case "decrypt":
		return runDecrypt(flags)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func runGenerate(flags *cliFlags) error {
	cfg, err := flags.config()
	if err != nil {
		return err
	}
	s, err := cfg.Build()
	if err != nil {
		return err
	}
	fp := cfg.Fingerprint()

	fmt.Printf("config:      %s\n", cfg.EncodeHex())
	fmt.Printf("fingerprint: %s\n", hex.EncodeToString(fp[:]))
	fmt.Printf("sbox:\n%s\n", formatTable(s))
	return nil
}

func runInvert(flags *cliFlags) error {
	cfg, err := flags.config()
	if err != nil {
		return err
	}
	inv, err := cfg.Matrix.Invert()
	if err != nil {
		return err
	}
	fmt.Printf("matrix:  %s\n", hex.EncodeToString(cfg.Matrix[:]))
	fmt.Printf("inverse: %s\n", hex.EncodeToString(inv[:]))
	return nil
}

func runMetrics(flags *cliFlags) error {
	cfg, err := flags.config()
	if err != nil {
		return err
	}
	s, err := cfg.Build()
	if err != nil {
		return err
	}
	report, err := metrics.CalculateAll(context.Background(), s)
	if err != nil {
		return err
	}

	fmt.Printf("config:  %s\n", cfg.EncodeHex())
	fmt.Printf("NL:      %d\n", report.NL)
	fmt.Printf("SAC:     %.6f\n", report.SAC)
	fmt.Printf("BIC-NL:  %d\n", report.BICNL)
	fmt.Printf("BIC-SAC: %.6f\n", report.BICSAC)
	fmt.Printf("LAP:     %.6f\n", report.LAP)
	fmt.Printf("DAP:     %.6f\n", report.DAP)
	fmt.Printf("fixed points:          %d\n", len(s.FixedPoints()))
	fmt.Printf("opposite fixed points: %d\n", len(s.OppositeFixedPoints()))
	fmt.Printf("output bit weights:    %s\n", formatBitWeights(s))
	return nil
}

// formatBitWeights renders the per-bit set counts; a balanced table
// shows 128 for every bit.
func formatBitWeights(s sbox.SBox) string {
	weights := make([]string, 8)
	for bit := 0; bit < 8; bit++ {
		weights[bit] = fmt.Sprintf("%d", s.BitWeight(bit))
	}
	return strings.Join(weights, " ")
}

func runEncrypt(flags *cliFlags) error {
	cfg, err := flags.config()
	if err != nil {
		return err
	}
	s, err := cfg.Build()
	if err != nil {
		return err
	}
	ct, err := sboxkit.Encrypt(flags.text, flags.key, s)
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(ct))
	return nil
}

func runDecrypt(flags *cliFlags) error {
	cfg, err := flags.config()
	if err != nil {
		return err
	}
	s, err := cfg.Build()
	if err != nil {
		return err
	}
	ct, err := hex.DecodeString(strings.TrimSpace(flags.text))
	if err != nil {
		return fmt.Errorf("-text must be hex ciphertext: %w", err)
	}
	pt, err := sboxkit.Decrypt(ct, flags.key, s)
	if err != nil {
		return err
	}
	fmt.Println(pt)
	return nil
}

// formatTable renders a 256-entry table as 16 rows of 16 hex bytes.
func formatTable(s sbox.SBox) string {
	var b strings.Builder
	for row := 0; row < 16; row++ {
		for col := 0; col < 16; col++ {
			fmt.Fprintf(&b, "%02x ", s[row*16+col])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
