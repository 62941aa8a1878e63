// Package catalog provides the minimal Jikan (MyAnimeList v4) client used by
// the consolidation driver.
//
// It fetches full anime records, including relation edges and theme songs,
// and walks the paginated top or all-anime listings. Every request waits on a
// shared rate limiter so the public API's request spacing is respected, and
// throttled or server-side failures are retried with exponential backoff.
// Payloads are translated into the package's Record type, which carries only
// the fields consolidation needs. Options allow tests to supply custom HTTP
// clients, limiters, or backoff without modifying production code.
package catalog
