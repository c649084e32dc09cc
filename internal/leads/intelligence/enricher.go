package intelligence

import (
	"context"
	"time"

	"crm_intel_backend/internal/leads/repository"

	"golang.org/x/sync/errgroup"
)

// ComputeBundle runs every signal computer for one lead and assembles
// the bundle. The five computers are independent and run concurrently;
// the bundle is only assembled after all of them finish. A panicking
// computer degrades to its neutral default instead of failing the lead.
func ComputeBundle(ctx context.Context, lead repository.Lead, population []repository.Lead, rates repository.SectorRateProvider, now time.Time) SignalBundle {
	var (
		conversion float64
		nextAction NextAction
		sentiment  Sentiment
		similar    []SimilarLead
		risk       float64
	)

	g, _ := errgroup.WithContext(ctx)

	runComputer(g, func() {
		conversion = EstimateConversion(lead, rates, now)
	}, func() {
		conversion = conversionBaseline
	})

	runComputer(g, func() {
		// The advisor consumes the conversion estimate but recomputes it
		// locally so the computers stay order-independent.
		nextAction = AdviseNextAction(lead, EstimateConversion(lead, rates, now), now)
	}, func() {
		nextAction = NextAction{Kind: ActionNurture, Priority: PriorityLow, Reason: "No urgent signal detected"}
	})

	runComputer(g, func() {
		sentiment = AnalyzeSentiment(lead)
	}, func() {
		sentiment = Sentiment{Score: 0, Label: SentimentNeutral}
	})

	runComputer(g, func() {
		similar = FindSimilarLeads(lead, population)
	}, func() {
		similar = nil
	})

	runComputer(g, func() {
		risk = EstimateRisk(lead, now)
	}, func() {
		risk = 0
	})

	// Computers never return errors; Wait is the fan-in barrier.
	_ = g.Wait()

	bundle := SignalBundle{
		ConversionProbability: conversion,
		NextAction:            nextAction,
		Sentiment:             sentiment,
		SimilarLeads:          similar,
		RiskScore:             risk,
		HealthScore:           HealthScore(conversion, risk),
		PriorityTier:          PriorityTier(conversion, risk),
	}
	bundle.Insights = GenerateInsights(lead, bundle, now)

	return bundle
}

// runComputer schedules a signal computation, recovering from panics by
// applying the computer's neutral fallback.
func runComputer(g *errgroup.Group, compute func(), fallback func()) {
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				fallback()
			}
		}()
		compute()
		return nil
	})
}
