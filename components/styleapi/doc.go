// Package styleapi provides an in-memory implementation of the form-config
// endpoint the storage client talks to, plus a small net/http handler and
// routing helpers. It exists for local development and tests; production
// deployments put a real persistence service behind the same contract.
//
// The handler responds to GET with the stored composition and accepts POST to
// replace it. A legacy mode serves the field list as a bare JSON array the way
// older deployments did.
package styleapi
