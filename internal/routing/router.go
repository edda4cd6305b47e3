package routing

import (
	"crypto/md5"
	"encoding/binary"
	"math/rand"

	"github.com/prompthost/prompthost/internal/entity"
)

type Decision string

const (
	DecisionBaseline   Decision = "baseline"
	DecisionChallenger Decision = "challenger"
)

// Router decides which variant a request sees. With an identifier the
// decision is sticky: the identifier is hashed together with the test's
// uuid so the same end user can land in different variants across
// different tests. Without one, the decision is a plain coin flip.
//
// Pure computation, no I/O, safe for concurrent use.
type Router struct {
	randFloat func() float64
}

func NewRouter() *Router {
	return &Router{randFloat: rand.Float64}
}

// NewRouterWithRand injects the uniform source used on the
// no-identifier path.
func NewRouterWithRand(randFloat func() float64) *Router {
	return &Router{randFloat: randFloat}
}

// Route returns the variant for this request. A nil identifier means no
// stickiness was requested; an empty string is a valid sticky identifier.
func (r *Router) Route(test *entity.DeploymentTest, customIdentifier *string) Decision {
	p := test.TrafficPercentage
	if customIdentifier == nil {
		if r.randFloat()*100 < float64(p) {
			return DecisionChallenger
		}
		return DecisionBaseline
	}
	sum := md5.Sum([]byte(*customIdentifier + test.UUID))
	h := binary.BigEndian.Uint32(sum[:4]) % 100
	if h < uint32(p) {
		return DecisionChallenger
	}
	return DecisionBaseline
}
