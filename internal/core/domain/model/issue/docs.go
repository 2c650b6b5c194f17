// Package issue provides the Issue aggregate: quality problems raised against
// an order or one of its items. Open issues set the order's has_issue flag and
// block the ready transition until resolved.
package issue
