// Package aggregates defines domain-facing aggregate contracts.
//
// These contracts avoid persistence/transport details and describe the write
// boundaries where a root and its collection must change atomically. Every
// update replaces the supplied collection wholesale; an absent collection is
// left untouched.
package aggregates
