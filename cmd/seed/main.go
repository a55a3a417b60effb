// Command seed loads the static dashboard content. It replaces the colleges,
// milestones, and tips collections and never touches users or families.
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/emmaworks/family-advisor-api/internal/config"
	"github.com/emmaworks/family-advisor-api/internal/model"
	"github.com/emmaworks/family-advisor-api/internal/repository"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.New(&logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := repository.Connect(ctx, cfg.DatabaseURL, cfg.StoreTimeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	contentRepo := repository.NewContentMongoRepository(client.Database(cfg.DatabaseName))

	logger.Info().Msg("seeding colleges")
	if err := contentRepo.ReplaceColleges(ctx, colleges()); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed colleges")
	}

	logger.Info().Msg("seeding milestones")
	if err := contentRepo.ReplaceMilestones(ctx, milestones()); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed milestones")
	}

	logger.Info().Msg("seeding tips")
	if err := contentRepo.ReplaceTips(ctx, tips()); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed tips")
	}

	logger.Info().Msg("seeding complete")
}

func colleges() []model.College {
	return []model.College{
		{
			Name:             "University of California, Berkeley",
			AcceptanceRate:   "14%",
			Tuition:          "$45,000/year",
			EmotionalTagline: "Where big ideas meet bigger impact.",
			DefaultFitReason: "Known for its strong academic programs and vibrant campus culture, " +
				"perfect for ambitious students who thrive in a dynamic environment.",
			DefaultFitReasonStudent: "Good for curious thinkers who want to change the world.",
			RichMediaLinks: []model.RichMediaLink{
				{Type: "Campus Tour", URL: "#"},
				{Type: "Day in the Life", URL: "#"},
				{Type: "Student POV", URL: "#"},
			},
		},
		{
			Name:             "Reed College",
			AcceptanceRate:   "35%",
			Tuition:          "$65,000/year",
			EmotionalTagline: "Unleash your intellect in a community that values deep inquiry.",
			DefaultFitReason: "A highly intellectual and quirky environment, ideal for independent " +
				"thinkers who love rigorous academics and a close-knit community.",
			DefaultFitReasonStudent: "Lots of outdoorsy, chill people who love to read and think.",
			RichMediaLinks: []model.RichMediaLink{
				{Type: "Campus Tour", URL: "#"},
				{Type: "Student Life", URL: "#"},
			},
		},
		{
			Name:             "Emory University",
			AcceptanceRate:   "19%",
			Tuition:          "$60,000/year",
			EmotionalTagline: "A vibrant community where intellect and compassion converge.",
			DefaultFitReason: "Offers a balanced environment with strong academics and a focus on " +
				"community engagement, great for well-rounded students.",
			DefaultFitReasonStudent: "Creative energy + strong academics for a balanced life.",
			RichMediaLinks: []model.RichMediaLink{
				{Type: "Virtual Tour", URL: "#"},
				{Type: "Alumni Stories", URL: "#"},
			},
		},
	}
}

func milestones() []model.Milestone {
	return []model.Milestone{
		{Text: "Refine college list based on financial aid estimates.", Month: "Current", IsDefault: true},
		{Text: "Prepare for SAT/ACT retakes or subject tests.", Month: "Current", IsDefault: true},
		{Text: "Brainstorm essay topics and outline first drafts.", Month: "Current", IsDefault: true},
		{Text: "Schedule college visits or virtual tours.", Month: "Current", IsDefault: true},
	}
}

func tips() []model.Tip {
	return []model.Tip{
		{Text: "Insider Tip: Admissions officers spend 7–10 minutes per file."},
		{Text: "Insider Tip: Summer experiences carry major weight."},
		{Text: "Insider Tip: Demonstrate interest by engaging with colleges online."},
		{Text: "Insider Tip: Start your essays early to allow for multiple revisions."},
	}
}
