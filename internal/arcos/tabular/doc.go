// Package tabular adapts a row-oriented observation table to the linker
// package: sort by frame (and object id, for stable ordering), filter to
// active rows, and call Linker.Link once per frame in increasing order.
//
// There is no dataframe dependency here. Table is a small column-oriented
// struct; callers that already hold a pandas-style dataframe equivalent
// populate Table's columns directly.
package tabular
