// Package bruteforce provides an exact index over importance-weighted stored
// vectors. Queries scan every vector and score by full-width cosine
// similarity, which is the reference ranking the SQL backends also apply;
// tree-based pruning is deliberately absent because the importance slot moves
// stored vectors off the unit sphere, breaking the metric assumptions such
// structures rely on.
package bruteforce
