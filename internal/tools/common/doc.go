// Package common holds the argument-extraction helpers and the
// instrumented handler wrappers shared by every tool package.
package common
