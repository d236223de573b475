package prompts

import (
	"fmt"
	"strings"

	"baro_site_server/internal/types"
)

// SiteStructureSystemPrompt frames the content model for providers that take
// a separate system message.
const SiteStructureSystemPrompt = `You are a website copywriter. Respond ONLY with a JSON object that matches the provided schema.`

// IconHint describes the feature icon field to the model. The schema also
// carries the names as an enum; the hint covers providers that ignore it.
var IconHint = "A lucide-react icon name, exactly one of: " + strings.Join(types.IconNames(), ", ") + "."

// GetSiteStructurePrompt embeds the user's description into the generation prompt.
func GetSiteStructurePrompt(description string) string {
	return fmt.Sprintf(`Create a professional website structure based on this description: "%s". Return as JSON.`, description)
}
