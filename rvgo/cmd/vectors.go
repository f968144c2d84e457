package cmd

import (
	"fmt"
	"os"

	"github.com/ethereum-optimism/optimism/op-service/jsonutil"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Vector is one stimulus of a verification run. DUT optionally holds the output
// of the design under test in the same form as Output: valid bit, then the result bits.
type Vector struct {
	Instr hexutil.Uint64 `json:"instr"`
	Rs1   hexutil.Uint64 `json:"rs1"`
	Rs2   hexutil.Uint64 `json:"rs2"`
	XLEN  uint64         `json:"xlen"`
	DUT   string         `json:"dut,omitempty"`
}

// Outcome is a Vector with the reference model output.
type Outcome struct {
	Vector
	Op     string `json:"op,omitempty"`
	Output string `json:"output,omitempty"`
	Match  *bool  `json:"match,omitempty"`
	Error  string `json:"error,omitempty"`
}

var OutFilePerm = os.FileMode(0o755)

// LoadVectors reads a JSON array of vectors, gzip compressed if the path ends in .gz.
func LoadVectors(path string) ([]Vector, error) {
	vectors, err := jsonutil.LoadJSON[[]Vector](path)
	if err != nil {
		return nil, fmt.Errorf("failed to load vectors: %w", err)
	}
	return *vectors, nil
}

// WriteOutcomes writes the outcomes as JSON to path. "-" is stdout and an empty path writes nothing.
func WriteOutcomes(path string, outcomes []Outcome) error {
	if err := jsonutil.WriteJSON(path, outcomes, OutFilePerm); err != nil {
		return fmt.Errorf("failed to write outcomes: %w", err)
	}
	return nil
}
