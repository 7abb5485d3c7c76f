// Package aggregate turns a ledger of buy/sell operations into holdings,
// allocation, net worth and cash-flow reports.
//
// Every function is a pure transformation of its arguments: nothing is read
// from shared state, nothing is written outside the returned value, and no
// input shape makes a function fail. Unusable numbers (a missing exchange
// rate, a zero total) degrade to zero instead.
package aggregate
