// Package e2etests contains the end-to-end scenarios run against the gateway and their
// supporting API.
//
// Infrastructure that is not specific to the ecommerce domain, such as the test context,
// filtering and result reporting, is in the lower-level framework package.
package e2etests
