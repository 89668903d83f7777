// Package castgraph loads voice actor filmographies from an encyclopedia
// XML dump into a graph store. It streams the dump page by page, keeps the
// pages that belong to the voice actor categories, extracts the works listed
// under their appearances section, and writes actor and appearance vertices
// joined by "has" edges.
//
// This package contains domain types, interfaces and the parsing core
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// neo4j/, etree/).
package castgraph
