// Package bindery assembles print-ready publications from raster
// illustrations: a multi-page interior document, a wraparound cover with a
// page-count-derived spine, a tiled marketing preview, and a catalog record
// for listing tooling.
//
// The library is organized as a set of pure geometry/layout functions
// (ResolvePageSpec, SpineInches, ComputeCoverLayout, GridFor) and a Service
// that runs the full pipeline for one publication: generate assets through
// an AssetProvider, assemble the interior PDF, compose the cover, composite
// the preview, and write everything atomically under the output root.
// RunBatch fans publications out across bounded workers with per-publication
// failure isolation.
//
// Basic usage:
//
//	svc := bindery.New(bindery.PlaceholderProvider{})
//	catalog, err := svc.Produce(ctx, cfg, "out")
//
// All artifacts for a publication are staged in a hidden directory and
// renamed into place only on full success, so a cancelled or failed run
// never leaves partial output at the expected paths.
package bindery
