//
// Copyright (c) 2026 EM-10A-VU Secure Private Computation Project contributors
//
// All rights reserved.
//

package protocol

import (
	"math/rand"
	"net"
	"sync"
	"testing"

	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/session"
	"github.com/5tefan543/EM-10A-VU-Secure-Private-Computation-Project/transport"
)

func runPair(t *testing.T, aliceInputs, bobInputs []int64, bits, scale int) (Verdict, Verdict) {
	t.Helper()
	ca, cb := net.Pipe()
	connA := transport.NewConn(ca)
	connB := transport.NewConn(cb)

	sess := session.New(bits, scale)

	var wg sync.WaitGroup
	var aVerdict, bVerdict Verdict
	var aErr, bErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		aVerdict, aErr = RunGarbler(connA, sess, aliceInputs, nil)
	}()
	go func() {
		defer wg.Done()
		bVerdict, bErr = RunEvaluator(connB, bobInputs, nil)
	}()
	wg.Wait()

	if aErr != nil {
		t.Fatalf("RunGarbler: %v", aErr)
	}
	if bErr != nil {
		t.Fatalf("RunEvaluator: %v", bErr)
	}
	return aVerdict, bVerdict
}

func wantCode(t *testing.T, aliceInputs, bobInputs []int64, bits int, wantCode string) {
	t.Helper()
	a, b := runPair(t, aliceInputs, bobInputs, bits, 10)
	if a.Code() != wantCode {
		t.Errorf("garbler verdict = %s, want %s", a.Code(), wantCode)
	}
	if b.Code() != wantCode {
		t.Errorf("evaluator verdict = %s, want %s", b.Code(), wantCode)
	}
}

// TestScenarios covers six numbered end-to-end cases.
func TestScenarios(t *testing.T) {
	// Scenario 1: A's maximum is the unique global maximum.
	wantCode(t, []int64{-110, -97, 50, 101, 8574}, []int64{0, 12, 99, 8000}, 32, "01")

	// Scenario 2: B's maximum is the unique global maximum.
	wantCode(t, []int64{1, 2, 3}, []int64{4, 5, 6}, 32, "11")

	// Scenario 3: equal maxima.
	wantCode(t, []int64{-5, 10, 42}, []int64{42, -99, 1}, 32, "00")

	// Scenario 4: both sides entirely negative.
	wantCode(t, []int64{-50, -20, -7}, []int64{-100, -3, -40}, 32, "11")

	// Scenario 5: single-element sets, A larger.
	wantCode(t, []int64{5}, []int64{-5}, 32, "01")

	// Scenario 6: the 32-bit signed maximum (scaled) against something smaller.
	wantCode(t, []int64{2147483647}, []int64{1}, 32, "01")
}

func TestScenarioBoundaryMostNegativeVsMostPositive(t *testing.T) {
	lo := -(int64(1) << 31)
	hi := (int64(1) << 31) - 1
	wantCode(t, []int64{lo}, []int64{hi}, 32, "11")
	wantCode(t, []int64{hi}, []int64{lo}, 32, "01")
}

func TestScenarioNegativeOneVsZero(t *testing.T) {
	wantCode(t, []int64{-1}, []int64{0}, 32, "11")
	wantCode(t, []int64{0}, []int64{-1}, 32, "01")
}

func TestScenarioEqualMaximaDifferingCardinality(t *testing.T) {
	wantCode(t, []int64{7}, []int64{-3, 0, 7, 2}, 32, "00")
}

func TestProtocolAgreesWithVerifyInClearRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const bits = 32
	lo := -(int64(1) << (bits - 1))
	hi := (int64(1) << (bits - 1)) - 1
	span := hi - lo + 1

	for i := 0; i < 100; i++ {
		n := 1 + rng.Intn(5)
		m := 1 + rng.Intn(5)
		aliceInputs := make([]int64, n)
		for j := range aliceInputs {
			aliceInputs[j] = lo + rng.Int63n(span)
		}
		bobInputs := make([]int64, m)
		for j := range bobInputs {
			bobInputs[j] = lo + rng.Int63n(span)
		}

		want, err := VerifyInClear(aliceInputs, bobInputs, bits)
		if err != nil {
			t.Fatalf("case %d: VerifyInClear: %v", i, err)
		}
		a, b := runPair(t, aliceInputs, bobInputs, bits, 10)
		if a.Code() != want.Code() {
			t.Errorf("case %d: garbler verdict = %s, want %s (alice=%v bob=%v)", i, a.Code(), want.Code(), aliceInputs, bobInputs)
		}
		if b.Code() != want.Code() {
			t.Errorf("case %d: evaluator verdict = %s, want %s (alice=%v bob=%v)", i, b.Code(), want.Code(), aliceInputs, bobInputs)
		}
	}
}

func TestVerdictAccessors(t *testing.T) {
	eq := verdictFromBits(0, 0)
	if !eq.Equal() || eq.AWins() || eq.BWins() || eq.Code() != "00" {
		t.Errorf("equal verdict accessors wrong: %+v", eq)
	}
	aw := verdictFromBits(0, 1)
	if aw.Equal() || !aw.AWins() || aw.BWins() || aw.Code() != "01" {
		t.Errorf("A-wins verdict accessors wrong: %+v", aw)
	}
	bw := verdictFromBits(1, 1)
	if bw.Equal() || bw.AWins() || !bw.BWins() || bw.Code() != "11" {
		t.Errorf("B-wins verdict accessors wrong: %+v", bw)
	}
}
