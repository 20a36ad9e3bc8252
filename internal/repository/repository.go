// Package repository handles access to user records.
//
// The service has no database: records are synthesized in memory. The
// repository still sits behind an interface so a real store can replace
// the sample one without touching services or handlers.
package repository
