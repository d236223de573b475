package prompts

import "fmt"

// HeroAspectRatio is the aspect ratio requested for hero backgrounds.
const HeroAspectRatio = "16:9"

func GetHeroImagePrompt(brandName, heroTitle string) string {
	return fmt.Sprintf("High quality web hero background image for a brand called %s. Subject: %s. Modern, professional, clean aesthetic, high resolution.", brandName, heroTitle)
}
