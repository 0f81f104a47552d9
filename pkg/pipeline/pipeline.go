// Package pipeline provides the core publication-graph pipeline.
//
// This package implements the complete build → layout → export pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Convert publication and paper records into a clustered graph
//  2. Layout: Compute force-directed positions for the graph
//  3. Export: Generate output in various formats (JSON, DOT)
//
// An optional filter step between layout and export reduces the graph to
// nodes matching a predicate set. Each stage can be run independently or as
// part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Publications: pubs,
//	    Formats:      []string{"json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := result.Artifacts["json"]
//
// Run individual stages:
//
//	// Build only
//	g, err := runner.Build(ctx, opts)
//
//	// Layout with existing graph
//	err := runner.ComputeLayout(ctx, g, opts)
//
//	// Export with existing graph
//	artifacts, err := runner.Export(ctx, g, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/RomainClaret/pubgraph/pkg/build"
	"github.com/RomainClaret/pubgraph/pkg/cache"
	"github.com/RomainClaret/pubgraph/pkg/errors"
	"github.com/RomainClaret/pubgraph/pkg/filter"
	"github.com/RomainClaret/pubgraph/pkg/graph"
	"github.com/RomainClaret/pubgraph/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600.0

	// DefaultIterations is the default force simulation step count.
	DefaultIterations = layout.DefaultIterations

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)
)

// Format constants for output formats.
const (
	FormatJSON = errors.FormatJSON
	FormatDOT  = errors.FormatDOT
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the publication-graph pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Publications []build.Publication `json:"publications,omitempty"`
	Papers       []build.StaticPaper `json:"papers,omitempty"`
	Topics       []build.Topic       `json:"topics,omitempty"` // custom taxonomy, defaults to build.DefaultTopics
	Refresh      bool                `json:"refresh,omitempty"`

	// Layout options
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Iterations int     `json:"iterations,omitempty"`
	Seed       uint64  `json:"seed,omitempty"`

	// Filter options (optional; nil means no filtering)
	Filter *filter.Spec `json:"filter,omitempty"`

	// Export options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	Now    time.Time   `json:"-"` // recency anchor, defaults to time.Now

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline run.
	RunID string

	// Graph is the laid-out (and possibly filtered) publication graph.
	Graph *graph.Graph

	// GraphHash is the content hash of the built graph before filtering.
	GraphHash string

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	BuildTime  time.Duration
	LayoutTime time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the built graph came from cache
	LayoutHit bool // Whether the laid-out graph came from cache
	ExportHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForExport(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks and defaults the build fields. Empty inputs are
// valid; they produce a graph with pre-initialized empty clusters.
func (o *Options) ValidateForBuild() error {
	if len(o.Topics) == 0 {
		o.Topics = build.DefaultTopics
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return errors.ValidateCanvas(o.Width, o.Height)
}

// SetExportDefaults sets default values for export.
func (o *Options) SetExportDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForExport validates and sets defaults for export.
func (o *Options) ValidateForExport() error {
	o.SetExportDefaults()
	if o.Filter != nil {
		if o.Filter.YearMin > o.Filter.YearMax {
			return errors.New(errors.ErrCodeInvalidFilter, "year range minimum %d exceeds maximum %d", o.Filter.YearMin, o.Filter.YearMax)
		}
		if o.Filter.MinCitations < 0 {
			return errors.New(errors.ErrCodeInvalidFilter, "citation floor %d is negative", o.Filter.MinCitations)
		}
	}
	return ValidateFormats(o.Formats)
}

// topicNames returns the taxonomy names in declaration order for cache keys.
func (o *Options) topicNames() []string {
	names := make([]string, len(o.Topics))
	for i, t := range o.Topics {
		names[i] = t.Name
	}
	return names
}

// GraphKeyOpts returns cache key options for the build stage.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		Topics: o.topicNames(),
	}
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:      o.Width,
		Height:     o.Height,
		Iterations: o.Iterations,
		Seed:       o.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact export.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
	}
}
