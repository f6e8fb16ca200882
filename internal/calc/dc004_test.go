package calc

import (
	"errors"
	"testing"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

func TestComputeDC004Defaults(t *testing.T) {
	t.Parallel()

	res, err := ComputeDC004(DefaultDC004Input())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	almostEqual(t, "TestPressureMPa", res.TestPressureMPa, 11.231, 0.001)
	if res.TDesignMM == nil || res.TTestMM == nil || res.RequiredMM == nil {
		t.Fatal("both thickness requirements should be defined")
	}
	// t_design = 10.21*51/(2*(138-0.6*10.21))
	almostEqual(t, "TDesignMM", *res.TDesignMM, 1.9743, 0.001)
	// t_test = 11.231*51/(2*(138-0.6*11.231))
	almostEqual(t, "TTestMM", *res.TTestMM, 2.1818, 0.001)
	// The test condition governs.
	almostEqual(t, "RequiredMM", *res.RequiredMM, *res.TTestMM, 1e-12)
	if res.Check != Verified {
		t.Errorf("Check = %s, real 6.90 >= %.3f should verify", res.Check, *res.RequiredMM)
	}
}

func TestComputeDC004UndefinedThickness(t *testing.T) {
	t.Parallel()

	in := DefaultDC004Input()
	in.SaMPa = 6 // 2*(6 - 0.6*10.21) < 0
	res, err := ComputeDC004(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TDesignMM != nil {
		t.Error("TDesignMM should be undefined when the denominator is not positive")
	}
	if res.RequiredMM != nil {
		t.Error("RequiredMM should be undefined")
	}
	if res.Check != NotVerified {
		t.Errorf("Check = %s, undefined requirement cannot verify", res.Check)
	}
}

func TestComputeDC004ThinSeat(t *testing.T) {
	t.Parallel()

	in := DefaultDC004Input()
	in.RealMM = 1.0
	res, err := ComputeDC004(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Check != NotVerified {
		t.Errorf("Check = %s, 1.0 mm < required should not verify", res.Check)
	}
}

func TestComputeDC004Validation(t *testing.T) {
	t.Parallel()

	in := DefaultDC004Input()
	in.DiMM = 0
	if _, err := ComputeDC004(in); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
