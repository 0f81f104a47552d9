package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/RomainClaret/pubgraph/pkg/build"
	"github.com/RomainClaret/pubgraph/pkg/cache"
	"github.com/RomainClaret/pubgraph/pkg/filter"
)

var fixedNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func testPublications() []build.Publication {
	return []build.Publication{
		{ID: "p1", Title: "Neural Evolution Methods", Authors: []string{"A Smith"}, Year: "2023", Citations: 50},
		{ID: "p2", Title: "Neural Plasticity Study", Authors: []string{"A Smith"}, Year: "2022", Citations: 10},
		{ID: "p3", Title: "Swarm Robotics Poster Session", Authors: []string{"C Lee"}, Year: "2021"},
	}
}

func testRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return NewRunner(c, nil, logger)
}

func testOptions() Options {
	return Options{
		Publications: testPublications(),
		Formats:      []string{FormatJSON, FormatDOT},
		Now:          fixedNow,
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil {
		t.Error("nil cache should default to NullCache")
	}
	if r.Keyer == nil {
		t.Error("nil keyer should default to DefaultKeyer")
	}
	if r.Logger == nil {
		t.Error("nil logger should default to log.Default")
	}
}

func TestExecute(t *testing.T) {
	r := testRunner(t)
	defer r.Close()

	result, err := r.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.RunID == "" {
		t.Error("RunID should be set")
	}
	if result.GraphHash == "" {
		t.Error("GraphHash should be set")
	}
	if result.Stats.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3", result.Stats.NodeCount)
	}
	if result.Stats.EdgeCount != 1 {
		t.Errorf("EdgeCount = %d, want 1", result.Stats.EdgeCount)
	}

	// All requested artifacts are present
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("missing json artifact")
	}
	dot, ok := result.Artifacts[FormatDOT]
	if !ok {
		t.Fatal("missing dot artifact")
	}
	if !strings.Contains(string(dot), `"p1" -- "p2"`) {
		t.Errorf("dot artifact missing edge: %s", dot)
	}

	// Nothing was cached beforehand
	if result.CacheInfo.BuildHit || result.CacheInfo.LayoutHit || result.CacheInfo.ExportHit {
		t.Errorf("first run should miss all stages: %+v", result.CacheInfo)
	}

	// Coordinates were computed
	for _, n := range result.Graph.Nodes() {
		if n.X == 0 && n.Y == 0 {
			t.Errorf("node %s has no coordinates", n.ID)
		}
	}
}

func TestExecuteCacheHits(t *testing.T) {
	r := testRunner(t)
	defer r.Close()
	ctx := context.Background()

	first, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}

	second, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}

	if !second.CacheInfo.BuildHit {
		t.Error("second run should hit the build cache")
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.ExportHit {
		t.Error("second run should hit the export cache")
	}

	if first.GraphHash != second.GraphHash {
		t.Error("graph hash should be stable across runs")
	}
	if first.RunID == second.RunID {
		t.Error("each run should get a fresh run id")
	}

	// Cached coordinates match the originals
	for _, n := range first.Graph.Nodes() {
		c, ok := second.Graph.Node(n.ID)
		if !ok {
			t.Fatalf("node %s missing from second run", n.ID)
		}
		if c.X != n.X || c.Y != n.Y {
			t.Errorf("node %s coordinates differ: (%v, %v) vs (%v, %v)", n.ID, n.X, n.Y, c.X, c.Y)
		}
	}
}

func TestExecuteRefresh(t *testing.T) {
	r := testRunner(t)
	defer r.Close()
	ctx := context.Background()

	if _, err := r.Execute(ctx, testOptions()); err != nil {
		t.Fatalf("first Execute: %v", err)
	}

	opts := testOptions()
	opts.Refresh = true
	result, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if result.CacheInfo.BuildHit {
		t.Error("refresh run should bypass the build cache")
	}
}

func TestExecuteWithFilter(t *testing.T) {
	r := testRunner(t)
	defer r.Close()

	spec := filter.Everything()
	spec.MinCitations = 20
	opts := testOptions()
	opts.Filter = &spec

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.NodeCount != 1 {
		t.Errorf("NodeCount = %d, want 1", result.Stats.NodeCount)
	}
	if result.Stats.EdgeCount != 0 {
		t.Errorf("EdgeCount = %d, want 0", result.Stats.EdgeCount)
	}
	if _, ok := result.Graph.Node("p1"); !ok {
		t.Error("p1 missing from filtered result")
	}

	// The json artifact reflects the filtered graph
	data := string(result.Artifacts[FormatJSON])
	if strings.Contains(data, "p2") {
		t.Error("json artifact should not contain filtered-out nodes")
	}
}

func TestExecuteEmptyInputs(t *testing.T) {
	r := testRunner(t)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{Now: fixedNow})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.NodeCount != 0 || result.Stats.EdgeCount != 0 {
		t.Errorf("empty run: %d nodes, %d edges", result.Stats.NodeCount, result.Stats.EdgeCount)
	}

	// Clusters are still pre-initialized for every topic
	if len(result.Graph.Topics()) != len(build.DefaultTopics) {
		t.Errorf("topics = %d, want %d", len(result.Graph.Topics()), len(build.DefaultTopics))
	}
}

func TestExecuteInvalidFilter(t *testing.T) {
	r := testRunner(t)
	defer r.Close()

	opts := testOptions()
	opts.Filter = &filter.Spec{YearMin: 3000, YearMax: 2000}
	if _, err := r.Execute(context.Background(), opts); err == nil {
		t.Error("inverted year range should fail")
	}
}

func TestBuildStage(t *testing.T) {
	r := testRunner(t)
	defer r.Close()
	ctx := context.Background()

	opts := testOptions()
	g, hit, err := r.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		t.Fatalf("BuildWithCacheInfo: %v", err)
	}
	if hit {
		t.Error("first build should miss")
	}
	if g.NodeCount() != 3 {
		t.Errorf("nodes = %d, want 3", g.NodeCount())
	}

	_, hit, err = r.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		t.Fatalf("BuildWithCacheInfo: %v", err)
	}
	if !hit {
		t.Error("second build should hit")
	}
}

func TestComputeLayoutStage(t *testing.T) {
	r := testRunner(t)
	defer r.Close()
	ctx := context.Background()

	opts := testOptions()
	g, err := r.Build(ctx, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	hit, err := r.ComputeLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		t.Fatalf("ComputeLayoutWithCacheInfo: %v", err)
	}
	if hit {
		t.Error("first layout should miss")
	}

	// Rebuild to get a fresh graph with zero coordinates, then hit the cache
	opts2 := testOptions()
	opts2.Refresh = true
	g2, err := r.Build(ctx, opts2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	hit, err = r.ComputeLayoutWithCacheInfo(ctx, g2, opts)
	if err != nil {
		t.Fatalf("ComputeLayoutWithCacheInfo: %v", err)
	}
	if !hit {
		t.Error("second layout should hit")
	}

	// Cached coordinates landed on the same node objects
	for _, n := range g.Nodes() {
		c, ok := g2.Node(n.ID)
		if !ok {
			t.Fatalf("node %s missing", n.ID)
		}
		if c.X != n.X || c.Y != n.Y {
			t.Errorf("node %s coordinates differ after cache hit", n.ID)
		}
	}
}
