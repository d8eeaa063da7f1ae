package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/IngInx747/nbvh/bvh"
)

// Print the node table of a tree built over a generated scene.
func Dump(ctx *cli.Context) error {
	nTriangles := ctx.Int("triangles")
	threshold := ctx.Int("threshold")
	seed := ctx.Int64("seed")
	if nTriangles <= 0 {
		return cli.NewExitError("dump: triangle count must be positive", 1)
	}

	mesh := generateMesh(nTriangles, seed)
	bound := mesh.bound()

	var split bvh.Split[int]
	switch name := ctx.String("split"); name {
	case "sah":
		split = bvh.SAHSplit(bound)
	case "middle":
		split = bvh.MiddlePointSplit(bound)
	case "equal":
		split = bvh.EqualCountsSplit(bound)
	default:
		return cli.NewExitError(fmt.Sprintf("dump: unknown split strategy %q", name), 1)
	}

	tree := bvh.New[int, float32](3)
	tree.Build(mesh.faceIds(), bound, split, threshold)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Node", "Kind", "Lo", "Hi", "Left / Offset", "Right / Count"})

	for i := range tree.Nodes() {
		node := &tree.Nodes()[i]
		kind := "inner"
		i0 := fmt.Sprintf("%d", node.Left())
		i1 := fmt.Sprintf("%d", node.Right())
		if node.IsLeaf() {
			kind = "leaf"
			i0 = fmt.Sprintf("%d", node.Offset())
			i1 = fmt.Sprintf("%d", node.Count())
		}
		table.Append([]string{
			fmt.Sprintf("%d", i),
			kind,
			fmt.Sprintf("(%.2f, %.2f, %.2f)", node.B.Lo[0], node.B.Lo[1], node.B.Lo[2]),
			fmt.Sprintf("(%.2f, %.2f, %.2f)", node.B.Hi[0], node.B.Hi[1], node.B.Hi[2]),
			i0,
			i1,
		})
	}
	table.SetFooter([]string{"", "", "", "", "TOTAL", fmt.Sprintf("%d", len(tree.Nodes()))})

	table.Render()
	return nil
}
