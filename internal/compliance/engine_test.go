package compliance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"canna-gate/internal/compliance"
	"canna-gate/internal/rules"
	id "canna-gate/pkg/domain"
)

// =============================================================================
// Engine Test Suite
// =============================================================================
// The engine is a pure function of request + rule set + reference date, so
// every regulatory property is exercised here without any wiring.

type EngineSuite struct {
	suite.Suite
	engine *compliance.Engine
	table  *rules.Table
	asOf   time.Time
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupSuite() {
	s.engine = compliance.NewEngine()

	table, err := rules.NewTable(rules.SeedVersion, rules.Seed())
	s.Require().NoError(err)
	s.table = table

	s.asOf = date(2025, time.June, 15)
}

// bornYearsAgo returns a date of birth for a customer of exactly the given
// age, with the birthday safely in the past relative to asOf.
func (s *EngineSuite) bornYearsAgo(years int) time.Time {
	return s.asOf.AddDate(-years, -1, 0)
}

func (s *EngineSuite) ruleSet(code string) rules.RuleSet {
	rs, err := s.table.Lookup(id.JurisdictionCode(code))
	s.Require().NoError(err)
	return rs
}

func (s *EngineSuite) evaluate(code string, customer compliance.Customer, cart compliance.Cart) compliance.Result {
	req := compliance.CheckoutRequest{
		Customer:     customer,
		Cart:         cart,
		Jurisdiction: id.JurisdictionCode(code),
	}
	result, err := s.engine.Evaluate(req, s.ruleSet(code), s.asOf)
	s.Require().NoError(err)
	return result
}

func (s *EngineSuite) kinds(result compliance.Result) []compliance.ViolationKind {
	kinds := make([]compliance.ViolationKind, 0, len(result.Violations))
	for _, v := range result.Violations {
		kinds = append(kinds, v.Kind)
	}
	return kinds
}

func flower(quantity int, grams float64) compliance.LineItem {
	return compliance.LineItem{
		ProductID:  "prod-flower",
		Category:   id.CategoryFlower,
		Quantity:   quantity,
		UnitAmount: grams,
	}
}

// =============================================================================
// Concrete scenarios
// =============================================================================

func (s *EngineSuite) TestCaliforniaAdultUse() {
	customer := compliance.Customer{DateOfBirth: s.bornYearsAgo(33)}

	s.Run("one eighth of flower is allowed", func() {
		result := s.evaluate("CA", customer, compliance.Cart{flower(1, 3.5)})
		s.True(result.Allowed)
		s.Empty(result.Violations)
		s.Empty(result.Warnings)
	})

	s.Run("ten eighths exceed the flower limit", func() {
		result := s.evaluate("CA", customer, compliance.Cart{flower(10, 3.5)})
		s.False(result.Allowed)
		s.Require().Len(result.Violations, 1)

		v := result.Violations[0]
		s.Equal(compliance.ViolationCategoryLimit, v.Kind)
		s.Equal(id.CategoryFlower, v.Category)
		s.InDelta(35.0, v.Total, 1e-9)
		s.InDelta(28.5, v.Limit, 1e-9)
	})
}

func (s *EngineSuite) TestFloridaMedicalOnly() {
	cart := compliance.Cart{flower(1, 3.5)}

	s.Run("no medical card blocks", func() {
		customer := compliance.Customer{DateOfBirth: s.bornYearsAgo(25)}
		result := s.evaluate("FL", customer, cart)
		s.False(result.Allowed)
		s.Equal([]compliance.ViolationKind{compliance.ViolationMedicalCard}, s.kinds(result))
	})

	s.Run("valid medical card allows", func() {
		customer := compliance.Customer{DateOfBirth: s.bornYearsAgo(25), HasMedicalCard: true}
		result := s.evaluate("FL", customer, cart)
		s.True(result.Allowed)
		s.Empty(result.Violations)
	})

	s.Run("under-age patient is blocked even with a card", func() {
		customer := compliance.Customer{DateOfBirth: s.bornYearsAgo(16), HasMedicalCard: true}
		result := s.evaluate("FL", customer, cart)
		s.False(result.Allowed)
		s.Equal([]compliance.ViolationKind{compliance.ViolationAge}, s.kinds(result))
	})
}

func (s *EngineSuite) TestTexasProhibition() {
	s.Run("adult with a medical card is still blocked", func() {
		customer := compliance.Customer{DateOfBirth: s.bornYearsAgo(33), HasMedicalCard: true}
		result := s.evaluate("TX", customer, compliance.Cart{flower(1, 1)})
		s.False(result.Allowed)
		s.Equal([]compliance.ViolationKind{compliance.ViolationLegality}, s.kinds(result))
	})

	s.Run("minor in a prohibited jurisdiction accumulates both violations", func() {
		customer := compliance.Customer{DateOfBirth: s.bornYearsAgo(15)}
		result := s.evaluate("TX", customer, compliance.Cart{flower(1, 1)})
		s.False(result.Allowed)
		s.ElementsMatch(
			[]compliance.ViolationKind{compliance.ViolationLegality, compliance.ViolationAge},
			s.kinds(result),
		)
	})
}

// =============================================================================
// Limit boundaries
// =============================================================================

func (s *EngineSuite) TestLimitBoundaries() {
	customer := compliance.Customer{DateOfBirth: s.bornYearsAgo(30)}

	s.Run("exactly at the limit passes", func() {
		result := s.evaluate("CO", customer, compliance.Cart{flower(1, 28)})
		s.True(result.Allowed)
	})

	s.Run("one gram over is blocked", func() {
		result := s.evaluate("CO", customer, compliance.Cart{flower(1, 29)})
		s.False(result.Allowed)
		s.Equal([]compliance.ViolationKind{compliance.ViolationCategoryLimit}, s.kinds(result))
	})

	s.Run("totals aggregate across lines of one category", func() {
		// 9 x 3.5g = 31.5g against Colorado's 28g.
		result := s.evaluate("CO", customer, compliance.Cart{flower(4, 3.5), flower(5, 3.5)})
		s.False(result.Allowed)
		s.Require().Len(result.Violations, 1)
		s.InDelta(31.5, result.Violations[0].Total, 1e-9)
	})

	s.Run("each over-limit category is flagged", func() {
		cart := compliance.Cart{
			flower(2, 20), // 40g over CO's 28g
			{ProductID: "prod-gummy", Category: id.CategoryEdible, Quantity: 10, UnitAmount: 100}, // 1000mg over CO's 800mg
		}
		result := s.evaluate("CO", customer, cart)
		s.False(result.Allowed)
		s.ElementsMatch(
			[]compliance.ViolationKind{compliance.ViolationCategoryLimit, compliance.ViolationCategoryLimit},
			s.kinds(result),
		)
	})

	s.Run("unrestricted categories never flag", func() {
		// Virginia's seed entry carries no edible limit.
		cart := compliance.Cart{
			{ProductID: "prod-gummy", Category: id.CategoryEdible, Quantity: 100, UnitAmount: 100},
		}
		result := s.evaluate("VA", customer, cart)
		s.True(result.Allowed)
	})

	s.Run("empty cart only trips non-cart rules", func() {
		result := s.evaluate("CA", customer, nil)
		s.True(result.Allowed)
	})
}

// =============================================================================
// Property sweeps across the full table
// =============================================================================

func (s *EngineSuite) TestSweepAllJurisdictions() {
	adult := compliance.Customer{DateOfBirth: s.bornYearsAgo(45)}
	cardHolder := compliance.Customer{DateOfBirth: s.bornYearsAgo(45), HasMedicalCard: true}

	for _, code := range s.table.Codes() {
		rs := s.ruleSet(code.String())
		cart := compliance.Cart{flower(1, 1)}

		switch rs.LegalStatus {
		case id.StatusLegal:
			result := s.evaluate(code.String(), adult, cart)
			s.True(result.Allowed, "adult purchase in %s", code)

			minor := compliance.Customer{DateOfBirth: s.bornYearsAgo(rs.MinAge - 1)}
			result = s.evaluate(code.String(), minor, cart)
			s.False(result.Allowed, "under-age purchase in %s", code)
			s.Contains(s.kinds(result), compliance.ViolationAge, "under-age purchase in %s", code)

		case id.StatusMedical:
			result := s.evaluate(code.String(), adult, cart)
			s.False(result.Allowed, "cardless purchase in %s", code)
			s.Contains(s.kinds(result), compliance.ViolationMedicalCard, "cardless purchase in %s", code)

			result = s.evaluate(code.String(), cardHolder, cart)
			s.True(result.Allowed, "card-holder purchase in %s", code)

			minorPatient := compliance.Customer{
				DateOfBirth:    s.bornYearsAgo(rs.MinAge - 1),
				HasMedicalCard: true,
			}
			result = s.evaluate(code.String(), minorPatient, cart)
			s.False(result.Allowed, "under-age patient in %s", code)

		case id.StatusIllegal, id.StatusDecriminalized:
			for _, customer := range []compliance.Customer{adult, cardHolder} {
				result := s.evaluate(code.String(), customer, cart)
				s.False(result.Allowed, "purchase in %s", code)
				s.Contains(s.kinds(result), compliance.ViolationLegality, "purchase in %s", code)
			}
		}
	}
}

// =============================================================================
// Cross-jurisdiction warning
// =============================================================================

func (s *EngineSuite) TestHomeStateWarning() {
	s.Run("differing home state warns without blocking", func() {
		customer := compliance.Customer{
			DateOfBirth: s.bornYearsAgo(30),
			HomeState:   "TX",
		}
		result := s.evaluate("CA", customer, compliance.Cart{flower(1, 3.5)})
		s.True(result.Allowed)
		s.Require().Len(result.Warnings, 1)
		s.Contains(result.Warnings[0], "TX")
		s.Contains(result.Warnings[0], "CA")
	})

	s.Run("matching home state stays silent", func() {
		customer := compliance.Customer{
			DateOfBirth: s.bornYearsAgo(30),
			HomeState:   "CA",
		}
		result := s.evaluate("CA", customer, compliance.Cart{flower(1, 3.5)})
		s.True(result.Allowed)
		s.Empty(result.Warnings)
	})

	s.Run("point of sale rules govern, not home state rules", func() {
		// A Texan shopping in California is evaluated under California law.
		customer := compliance.Customer{
			DateOfBirth: s.bornYearsAgo(30),
			HomeState:   "TX",
		}
		result := s.evaluate("CA", customer, compliance.Cart{flower(1, 3.5)})
		s.True(result.Allowed)
		s.NotContains(s.kinds(result), compliance.ViolationLegality)
	})
}

// =============================================================================
// Input faults
// =============================================================================

func (s *EngineSuite) TestInputFaults() {
	cart := compliance.Cart{flower(1, 3.5)}

	s.Run("future date of birth aborts the evaluation", func() {
		req := compliance.CheckoutRequest{
			Customer:     compliance.Customer{DateOfBirth: s.asOf.AddDate(1, 0, 0)},
			Cart:         cart,
			Jurisdiction: "CA",
		}
		_, err := s.engine.Evaluate(req, s.ruleSet("CA"), s.asOf)
		s.Error(err)
	})

	s.Run("negative quantity aborts the evaluation", func() {
		req := compliance.CheckoutRequest{
			Customer:     compliance.Customer{DateOfBirth: s.bornYearsAgo(30)},
			Cart:         compliance.Cart{flower(-1, 3.5)},
			Jurisdiction: "CA",
		}
		_, err := s.engine.Evaluate(req, s.ruleSet("CA"), s.asOf)
		s.Error(err)
	})

	s.Run("mismatched rule set aborts the evaluation", func() {
		req := compliance.CheckoutRequest{
			Customer:     compliance.Customer{DateOfBirth: s.bornYearsAgo(30)},
			Cart:         cart,
			Jurisdiction: "CA",
		}
		_, err := s.engine.Evaluate(req, s.ruleSet("OR"), s.asOf)
		s.Error(err)
	})
}

// =============================================================================
// Message rendering
// =============================================================================

func (s *EngineSuite) TestViolationMessages() {
	customer := compliance.Customer{DateOfBirth: s.bornYearsAgo(15)}
	result := s.evaluate("TX", customer, compliance.Cart{flower(1, 1)})

	msgs := result.Messages()
	s.Require().Len(msgs, 2)
	s.Contains(msgs[0], "TX")
	s.Contains(msgs[1], "minimum age of 21")
}
