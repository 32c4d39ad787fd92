// Package services contains domain services for the ordering workflow.
//
// Domain services host business logic that spans aggregates or does not
// naturally belong to a single entity. TransitionPolicy is the role gate of
// the workflow: it maps every order action to the actor roles allowed to
// request it, and is consulted before any order state is touched.
package services
