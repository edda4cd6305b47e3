package entity

// RunSource tags where a document run originated. Routing rewrites the
// source when a request is diverted to a challenger.
type RunSource string

const (
	RunSourceAPI              RunSource = "api"
	RunSourceApp              RunSource = "app"
	RunSourceABTestChallenger RunSource = "ab_test_challenger"
	RunSourceShadowTest       RunSource = "shadow_test"
)
