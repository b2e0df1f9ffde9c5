// Package cache implements a single-process, in-memory LRU cache whose
// capacity is measured in weight rather than entry count.
//
// Goals for this package:
//   - Make the core data structures explicit (map index + arena-backed doubly-linked list)
//   - Provide O(1) Put/Get via the index and sentinel-bounded recency links
//   - Serialize every operation, reads included, behind one mutex
//   - Let values report their own weight through the optional Sizer interface;
//     values without it weigh 1, which turns the cache into a plain bounded-count LRU
package cache
