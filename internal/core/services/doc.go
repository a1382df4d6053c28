// Package services implements the driving port interfaces.
// Services contain the core business logic - the four pipeline stages,
// the RFC aggregator, and the run orchestrator - and orchestrate calls
// to driven ports (adapters).
//
// Every threshold and weight is an explicit config field passed in at
// construction; services hold no ambient state beyond one run.
package services
