// Package pkg holds the libraries behind the ekistations crawler.
//
// # Overview
//
// Ekistations builds a flat list of every railway station in Japan from the
// ekidata.jp API. The packages are layered:
//
//  1. [ekidata] - API client, response unwrapping and the data model
//  2. [fanout] - concurrent fan-out with a two-tier (degraded/failed) result
//  3. [stations] - ordering, deduplication and the JSON artifact
//  4. [pipeline] - orchestration (fetch lines → fetch stations → save)
//
// Supporting packages:
//
//   - [cache] - optional HTTP response cache (files or Redis)
//   - [integrations] - shared HTTP client
//   - [observability] - hooks for logging and metrics
//   - [errors] - coded errors and input validation
//
// # Data Flow
//
//	47 prefectures
//	      ↓  GET /p/{code}.json   (fan-out)
//	    lines
//	      ↓  GET /l/{line_cd}.json (fan-out)
//	   stations
//	      ↓  sort, dedup by (line, name)
//	 stations.json
//
// A response that cannot be parsed removes only its own prefecture or line
// from the result. A request that fails outright fails the whole crawl and
// nothing is written.
package pkg
