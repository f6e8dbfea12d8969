// Package imagegen produces placeholder product imagery with Gemini for
// products that have no photo yet.
package imagegen

import (
	"fmt"
	"hash/fnv"
	"strings"

	"brochure/internal/models"
)

// maxPromptFeatures bounds how many features the prompt emphasizes.
const maxPromptFeatures = 3

const styleSuffix = ", professional product photography, clean modern aesthetic, high quality, realistic lighting, 4K resolution"

// scenarioTemplates maps product categories to usage-scene templates. %s is
// the product name.
var scenarioTemplates = map[string][]string{
	"Video Door Bell": {
		"A modern home entrance with a %s installed, showing a delivery person at the door while the homeowner receives a notification on their smartphone inside a contemporary living room",
		"A family home front door with %s capturing clear footage of visitors, with the device prominently displayed and a smartphone showing the live feed",
		"A residential doorway featuring %s with motion detection active, showing the device's sleek design and a mobile app interface displaying alerts",
	},
	"Security Camera": {
		"A %s mounted on a modern home exterior, monitoring the driveway and garden area with clear visibility and professional installation",
		"An indoor setting with %s providing home security monitoring, showing the camera's design and a smartphone displaying live footage",
		"A %s in a contemporary office or retail space, demonstrating professional security monitoring capabilities",
	},
	"Smart Lock": {
		"A modern front door with %s installed, showing keyless entry in action with a smartphone unlocking the door",
		"A residential entrance featuring %s with smart access control, displaying the lock's design and mobile app interface",
		"A home security setup with %s providing convenient and secure access control for family members",
	},
}

var genericTemplates = []string{
	"A modern smart home setup featuring %s in use, showing its key functionality and user interaction",
	"A contemporary residential setting with %s demonstrating its practical application and benefits",
	"A real-world usage scenario of %s highlighting its main features and user experience",
}

// BuildPrompt composes a usage-scene prompt from the product's category and
// features. Template choice hashes on the model number so repeat runs
// produce the same prompt per product.
func BuildPrompt(product *models.Product) string {
	templates, ok := scenarioTemplates[product.Category]
	if !ok {
		templates = genericTemplates
	}

	name := product.Name
	if name == "" {
		name = "Smart Device"
	}

	hasher := fnv.New32a()
	hasher.Write([]byte(product.Model))

	template := templates[int(hasher.Sum32())%len(templates)]
	prompt := fmt.Sprintf(template, name)

	if len(product.Features) > 0 {
		features := product.Features
		if len(features) > maxPromptFeatures {
			features = features[:maxPromptFeatures]
		}

		prompt += ", emphasizing " + strings.Join(features, ", ")
	}

	return prompt + styleSuffix
}
