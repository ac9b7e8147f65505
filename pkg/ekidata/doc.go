// Package ekidata provides a client for the ekidata.jp railway API.
//
// # Overview
//
// ekidata.jp publishes Japanese railway data as JavaScript snippets that
// assign a JSON payload to a global:
//
//	if(typeof(xml)=='undefined') xml = {};
//	xml.data = {"line":[{"line_cd":11302,"line_name":"JR山手線"}]}
//	if(typeof(xml.onload)=='function') xml.onload(xml.data);
//
// [Normalize] strips that wrapper so the payload can be decoded as JSON.
//
// # Endpoints
//
//   - /p/{prefecture}.json: lines running through a prefecture
//   - /l/{line_cd}.json: stations on a line
//
// # Error Model
//
// [Client.LinesByPrefecture] and [Client.StationsByLine] return a
// [fanout.Result]. A body that cannot be parsed is logged and reported as
// degraded (no items); only a transport failure is reported as failed.
//
// [fanout.Result]: github.com/matzehuels/ekistations/pkg/fanout.Result
package ekidata
