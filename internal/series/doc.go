// Package series creates series and keeps their aggregates consistent.
//
// A series is seeded from the first anime that cannot be attached anywhere
// else. Every later attach relinks the member and recomputes all aggregate
// fields from the complete member list, so the result does not depend on the
// order members arrive in.
package series
