package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/quadmesh/internal/forest"
	"github.com/quadmesh/internal/quadrant"
	"github.com/quadmesh/pkg/errors"
)

var (
	completeALevel int8
	completeAID    int64
	completeBLevel int8
	completeBID    int64
	completeInclA  bool
	completeInclB  bool
)

// completeCmd tiles the Morton interval between two quadrants.
var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Tile the region between two quadrants",
	Long: `Complete the region between two quadrants, given by refinement level and
Morton index, into the minimal gap-free tiling and print the resulting
tree.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, span := otel.Tracer("quadmesh").Start(cmd.Context(), "forest.complete")
		defer span.End()

		a, err := quadrantFromFlags(completeALevel, completeAID)
		if err != nil {
			return err
		}
		b, err := quadrantFromFlags(completeBLevel, completeBID)
		if err != nil {
			return err
		}
		if quadrant.Compare(&a, &b) >= 0 {
			return errors.New(errors.CodeInvalidInput,
				"the first quadrant must precede the second in Morton order")
		}

		f := forest.New(nil, cfg.Forest.DataSize)
		defer f.Destroy()
		tree := forest.NewTree()

		f.CompleteRegion(&a, completeInclA, &b, completeInclB, tree, 0, nil)

		span.SetAttributes(attribute.Int("quadrants", tree.Quadrants.Len()))
		logger.Info("completed region with %d quadrants, maxlevel %d",
			tree.Quadrants.Len(), tree.Maxlevel)
		tree.Print(-1, os.Stdout)
		return nil
	},
}

// quadrantFromFlags builds a quadrant from its level and Morton index,
// validating both.
func quadrantFromFlags(level int8, id int64) (quadrant.Quadrant, error) {
	var q quadrant.Quadrant
	if level < 0 || level > quadrant.MaxLevel {
		return q, errors.New(errors.CodeInvalidInput, "level out of range")
	}
	if id < 0 || id >= int64(1)<<(2*int(level)) {
		return q, errors.New(errors.CodeInvalidInput, "morton index out of range for level")
	}
	q.SetMorton(level, id)
	return q, nil
}

func init() {
	completeCmd.Flags().Int8Var(&completeALevel, "a-level", 1, "Refinement level of the first quadrant")
	completeCmd.Flags().Int64Var(&completeAID, "a-id", 0, "Morton index of the first quadrant")
	completeCmd.Flags().Int8Var(&completeBLevel, "b-level", 1, "Refinement level of the second quadrant")
	completeCmd.Flags().Int64Var(&completeBID, "b-id", 3, "Morton index of the second quadrant")
	completeCmd.Flags().BoolVar(&completeInclA, "include-a", true, "Include the first quadrant in the output")
	completeCmd.Flags().BoolVar(&completeInclB, "include-b", true, "Include the second quadrant in the output")
	rootCmd.AddCommand(completeCmd)
}
