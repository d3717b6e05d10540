package testutil

import "testing"

// RunConfig configures a behavior test run.
type RunConfig struct {
	// MaxOps is the maximum number of operations to execute.
	MaxOps int

	// CompareStateEveryN runs full state comparison every N operations.
	// Set to 0 to disable periodic checks (only check at end).
	CompareStateEveryN int
}

// DefaultRunConfig returns a balanced configuration for behavior tests.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		MaxOps:             100,
		CompareStateEveryN: 10,
	}
}

// RunBehaviorWithSeed executes a deterministic stream of operations derived
// from seed and fails tb as soon as the repository and the model disagree.
func RunBehaviorWithSeed(tb testing.TB, seed []byte, cfg RunConfig) {
	tb.Helper()

	if cfg.MaxOps <= 0 {
		tb.Fatalf("RunBehaviorWithSeed requires MaxOps > 0")
	}

	h := NewHarness(tb)
	genCfg := DefaultOpGenConfig()
	gen := NewOpGenerator(seed, h.Model, &genCfg)
	history := make([]string, 0, cfg.MaxOps)

	for opIndex := 1; opIndex <= cfg.MaxOps && gen.HasMore(); opIndex++ {
		op := gen.NextOp()
		history = append(history, op.String())

		err := op.Apply(h)
		if err != nil {
			tb.Fatalf("%v\n%s", err, FormatOps(history))
		}

		if cfg.CompareStateEveryN > 0 && opIndex%cfg.CompareStateEveryN == 0 {
			err := CompareState(h, history)
			if err != nil {
				tb.Fatal(err)
			}
		}
	}

	err := CompareState(h, history)
	if err != nil {
		tb.Fatal(err)
	}
}
