package parse

import (
	"ideaforge/internal/gemini"
	"ideaforge/internal/types"
)

// CollectGroundingLinks flattens citation chunks into links, in input
// order, without deduplication. Three shapes contribute: a web source, a
// maps source, and review snippets nested under a maps source. Entries
// without a URI are skipped; a missing title falls back to the URI.
func CollectGroundingLinks(chunks []gemini.GroundingChunk) []types.GroundingLink {
	var links []types.GroundingLink
	for _, chunk := range chunks {
		if chunk.Web != nil && chunk.Web.URI != "" {
			links = append(links, newLink(chunk.Web.URI, chunk.Web.Title))
		}
		if chunk.Maps != nil {
			if chunk.Maps.URI != "" {
				links = append(links, newLink(chunk.Maps.URI, chunk.Maps.Title))
			}
			if chunk.Maps.PlaceAnswerSources != nil {
				for _, snippet := range chunk.Maps.PlaceAnswerSources.ReviewSnippets {
					if snippet.URI != "" {
						links = append(links, newLink(snippet.URI, snippet.Title))
					}
				}
			}
		}
	}
	return links
}

func newLink(uri, title string) types.GroundingLink {
	if title == "" {
		title = uri
	}
	return types.GroundingLink{URI: uri, Title: title}
}
