package qbench

import "math/rand/v2"

/*
NewRand returns the random source every randomized operation takes as an
explicit argument. The same seed always yields the same oracle choices,
measurement samples and classical noise.
*/
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
