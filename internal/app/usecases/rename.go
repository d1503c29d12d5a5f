package usecases

import (
	"github.com/astrskai/astrsk-sub018/internal/app/dto"
	"github.com/astrskai/astrsk-sub018/internal/core/flow"
	"github.com/astrskai/astrsk-sub018/internal/core/template"
	"github.com/astrskai/astrsk-sub018/internal/infrastructure/metrics"
)

// RenameAgent propagates an agent rename through every template in the flow:
// each agent prompt and the response template. Names are sanitized before
// rewriting so the replacement matches what templates actually contain. The
// flow is mutated in place; the result counts templates that changed.
func RenameAgent(f *flow.Flow, oldName, newName string) (*dto.RenameResult, error) {
	if f == nil {
		return nil, dto.ErrNilFlow
	}
	if oldName == "" || newName == "" {
		return nil, dto.ErrMissingName
	}
	oldSan := template.SanitizeAgentName(oldName)
	newSan := template.SanitizeAgentName(newName)
	res := &dto.RenameResult{OldName: oldSan, NewName: newSan}
	if oldSan == newSan {
		return res, nil
	}
	for _, def := range f.Agents {
		if def != nil && template.SanitizeAgentName(def.Name) == newSan {
			return nil, dto.ErrNameTaken
		}
	}

	var found bool
	for _, def := range f.Agents {
		if def == nil {
			continue
		}
		if template.SanitizeAgentName(def.Name) == oldSan {
			def.Name = newName
			found = true
		}
		if def.Prompt == "" || !template.HasAgentReferences(def.Prompt, oldSan) {
			continue
		}
		def.Prompt = template.ReplaceAgentReferences(def.Prompt, oldSan, newSan)
		res.Rewritten++
	}
	if f.ResponseTemplate != "" && template.HasAgentReferences(f.ResponseTemplate, oldSan) {
		f.ResponseTemplate = template.ReplaceAgentReferences(f.ResponseTemplate, oldSan, newSan)
		res.Rewritten++
	}

	if !found && res.Rewritten == 0 {
		return nil, dto.ErrUnknownAgent
	}
	metrics.IncTemplateRenames()
	return res, nil
}
