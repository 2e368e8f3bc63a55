package content

import (
	"strconv"
	"strings"

	"teachassist/internal/models"
)

// maxExampleSlides caps how many slides one example list expands into.
const maxExampleSlides = 3

// presenterNotes are fixed coaching hints per field key; they are canned
// text, never derived from the payload.
var presenterNotes = map[string]string{
	"conceptual_briefing":     "Set the stage. Read slowly and pause before moving on.",
	"simple_explanation":      "This is the core idea. Ask the class to repeat it back.",
	"mnemonics_hooks":         "Have students say the hook out loud together.",
	"what_to_say":             "Deliver this script verbatim, then check for nods.",
	"specific_examples":       "Work the example on the board before showing the slide.",
	"generic_examples":        "Invite a student to attempt this one first.",
	"visual_aid_idea":         "Sketch this on the board if no projector is available.",
	"check_for_understanding": "Cold-call two or three students per question.",
	"common_misconceptions":   "Ask who has seen this mistake before revealing the fix.",
	"oral_questions":          "Keep these verbal; no writing needed.",
	"understanding":           "Acknowledge the situation before prescribing anything.",
	"immediate_action":        "Do this now, before continuing the lesson.",
	"quick_activity":          "Time-box this tightly; two minutes per step.",
	"learning_objectives":     "Read the objectives aloud at the start and end.",
	"activities":              "Assign groups before explaining the activity.",
	"exit_questions":          "Collect answers on slips as students leave.",
	"problem_statement":       "Have a student restate the problem in their own words.",
	"solution_steps":          "Reveal one step at a time; ask what comes next.",
	"final_answer":            "Ask the class whether the answer is reasonable first.",
	"verification":            "Show that checking work is part of the work.",
	"common_mistakes":         "Normalize the mistake, then correct it.",
	"similar_practice":        "Assign these for independent practice.",
}

// BuildSlideDeck projects a payload into an ordered slide deck. It consumes
// the normalized sections rather than re-reading the payload, so the deck
// always agrees with the section view. An intro and outro slide frame the
// deck; example lists cap at three slides.
func BuildSlideDeck(payload map[string]interface{}) (models.ContentMode, []models.Slide) {
	mode, sections := BuildSections(payload)

	slides := []models.Slide{introSlide(mode)}
	for _, sec := range sections {
		slides = append(slides, slidesForSection(sec)...)
	}
	slides = append(slides, outroSlide(mode))
	return mode, slides
}

func slidesForSection(sec models.Section) []models.Slide {
	notes := presenterNotes[sec.Key]
	category := string(sec.Kind)

	switch sec.Kind {
	case models.SectionExamples, models.SectionMnemonics:
		// One slide per item, capped.
		n := len(sec.Items)
		if n > maxExampleSlides {
			n = maxExampleSlides
		}
		slides := make([]models.Slide, 0, n)
		for _, item := range sec.Items[:n] {
			title := item.Label
			if title == "" {
				title = sec.Title
			}
			slides = append(slides, models.Slide{
				Title:    title,
				Body:     item.Body,
				Category: category,
				Notes:    notes,
			})
		}
		return slides
	case models.SectionLeveledQuestions:
		lines := make([]string, 0, len(sec.Questions))
		for _, q := range sec.Questions {
			lines = append(lines, "- "+q.Question)
		}
		return []models.Slide{{
			Title:    sec.Title,
			Body:     strings.Join(lines, "\n"),
			Category: category,
			Notes:    notes,
		}}
	case models.SectionSteps:
		lines := make([]string, 0, len(sec.Steps))
		for _, s := range sec.Steps {
			lines = append(lines, stepLine(s))
		}
		return []models.Slide{{
			Title:    sec.Title,
			Body:     strings.Join(lines, "\n"),
			Category: category,
			Notes:    notes,
		}}
	case models.SectionActivities:
		lines := make([]string, 0, len(sec.Activities))
		for _, a := range sec.Activities {
			lines = append(lines, activityLine(a))
		}
		return []models.Slide{{
			Title:    sec.Title,
			Body:     strings.Join(lines, "\n"),
			Category: category,
			Notes:    notes,
		}}
	case models.SectionKeyValue:
		body := sec.Text
		if body == "" && len(sec.Pairs) > 0 {
			lines := make([]string, 0, len(sec.Pairs))
			for _, p := range sec.Pairs {
				lines = append(lines, "**"+p.Key+"**: "+p.Value)
			}
			body = strings.Join(lines, "\n")
		}
		return []models.Slide{{Title: sec.Title, Body: body, Category: category, Notes: notes}}
	default:
		return []models.Slide{{Title: sec.Title, Body: sec.Text, Category: category, Notes: notes}}
	}
}

func stepLine(s models.SolutionStep) string {
	var b strings.Builder
	b.WriteString("Step ")
	b.WriteString(strconv.Itoa(s.Number))
	b.WriteString(": ")
	b.WriteString(s.Action)
	if s.Working != "" {
		b.WriteString(" (")
		b.WriteString(s.Working)
		b.WriteString(")")
	}
	if s.Result != "" {
		b.WriteString(" = ")
		b.WriteString(s.Result)
	}
	return b.String()
}

func activityLine(a models.ActivityItem) string {
	line := "- " + a.Name
	if a.Duration != "" {
		line += " (" + a.Duration + ")"
	}
	if a.Description != "" {
		if a.Name != "" {
			line += ": "
		}
		line += a.Description
	}
	return line
}

var introTitles = map[models.ContentMode]string{
	models.ModeExplanation:     "Concept Overview",
	models.ModeClassroomAssist: "Classroom Assist",
	models.ModeLessonPlan:      "Lesson Plan",
	models.ModeMathSolution:    "Worked Solution",
	models.ModeGeneric:         "Overview",
}

func introSlide(mode models.ContentMode) models.Slide {
	return models.Slide{
		Title:    introTitles[mode],
		Body:     "",
		Category: "intro",
		Notes:    "Welcome the class and preview what this deck covers.",
	}
}

func outroSlide(mode models.ContentMode) models.Slide {
	return models.Slide{
		Title:    "Wrap Up",
		Body:     "",
		Category: "outro",
		Notes:    "Recap the key points and invite questions.",
	}
}
