package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/quadmesh/internal/mesh"
)

var meshPrint bool

// meshCmd groups the mesh file commands.
var meshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Work with ASCII mesh files",
}

// meshReadCmd parses a mesh file and reports its topology.
var meshReadCmd = &cobra.Command{
	Use:   "read <file>",
	Short: "Parse a mesh file and log its topology",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, span := otel.Tracer("quadmesh").Start(cmd.Context(), "mesh.read")
		defer span.End()

		path := cfg.ResolveMeshPath(args[0])
		conn, err := mesh.ReadFile(path)
		if err != nil {
			return err
		}

		logger.Info("read mesh %s: %d trees, %d vertices", path, conn.NumTrees, conn.NumVertices)
		for k := int32(0); k < conn.NumTrees; k++ {
			logger.Debug("tree %d: vertices %v neighbors %v faces %v", k+1,
				conn.TreeToVertex[4*k:4*k+4],
				conn.TreeToTree[4*k:4*k+4],
				conn.TreeToFace[4*k:4*k+4])
		}

		if meshPrint {
			return mesh.Write(conn, os.Stdout)
		}
		return nil
	},
}

func init() {
	meshReadCmd.Flags().BoolVar(&meshPrint, "print", false, "Re-emit the mesh in canonical form")
	meshCmd.AddCommand(meshReadCmd)
	rootCmd.AddCommand(meshCmd)
}
