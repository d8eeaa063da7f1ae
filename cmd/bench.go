package cmd

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/op/go-logging"
	"github.com/urfave/cli"

	"github.com/IngInx747/nbvh/bvh"
)

var logger = logging.MustGetLogger("nbvh")

// Benchmark tree construction and ray queries over a generated scene.
func Bench(ctx *cli.Context) error {
	nTriangles := ctx.Int("triangles")
	nRays := ctx.Int("rays")
	threshold := ctx.Int("threshold")
	seed := ctx.Int64("seed")
	if nTriangles <= 0 {
		return cli.NewExitError("bench: triangle count must be positive", 1)
	}
	if nRays <= 0 {
		return cli.NewExitError("bench: ray count must be positive", 1)
	}

	logger.Infof("generating scene: %d triangles, seed %d", nTriangles, seed)
	mesh := generateMesh(nTriangles, seed)
	bound := mesh.bound()
	orgs, dirs := generateRays(nRays, seed+1)

	strategies := []struct {
		name  string
		split bvh.Split[int]
	}{
		{"equal-counts", bvh.EqualCountsSplit(bound)},
		{"middle-point", bvh.MiddlePointSplit(bound)},
		{"sah", bvh.SAHSplit(bound)},
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Strategy", "Build time", "Nodes", "Leafs", "Max leaf", "Query time", "Hits"})

	for _, strategy := range strategies {
		tree := bvh.New[int, float32](3)

		start := time.Now()
		tree.Build(mesh.faceIds(), bound, strategy.split, threshold)
		buildTime := time.Since(start)

		leafs, maxLeaf := leafStats(tree)

		hitId := -1
		collide := mesh.collide(&hitId)
		hits := 0

		start = time.Now()
		for i := range orgs {
			dist := float32(math.Inf(+1))
			if tree.Intersect(collide, orgs[i], dirs[i], &dist) {
				hits++
			}
		}
		queryTime := time.Since(start)

		table.Append([]string{
			strategy.name,
			fmt.Sprintf("%s", buildTime),
			fmt.Sprintf("%d", len(tree.Nodes())),
			fmt.Sprintf("%d", leafs),
			fmt.Sprintf("%d", maxLeaf),
			fmt.Sprintf("%s", queryTime),
			fmt.Sprintf("%d / %d", hits, nRays),
		})
	}

	table.Render()
	return nil
}

// Count leafs and the largest leaf of a built tree.
func leafStats(tree *bvh.Tree[int, float32]) (leafs, maxLeaf int) {
	for i := range tree.Nodes() {
		node := &tree.Nodes()[i]
		if !node.IsLeaf() {
			continue
		}
		leafs++
		if node.Count() > maxLeaf {
			maxLeaf = node.Count()
		}
	}
	return leafs, maxLeaf
}
