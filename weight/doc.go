// Package weight implements the importance-weighted vector transform used by
// retrieval pipelines that rank by semantic similarity and by an
// application-assigned weight with a single ANN lookup. A scalar weight in
// [0, 1] is folded into the fixed-width vector itself: the raw embedding is
// normalized to unit norm and sqrt(importance) occupies one extra trailing
// dimension, subject to the index-wide 4096 dimension cap.
//
// The package exposes four pure operations:
//   - Encode: raw embedding + importance -> stored vector
//   - EncodeQuery: raw embedding -> query vector (neutral trailing slot)
//   - Importance: stored vector -> weight
//   - Reweight: stored vector + new weight -> stored vector
//
// plus EffectiveDimension, which callers use to allocate or validate vector
// column widths. All functions are stateless and safe for concurrent use.
package weight
