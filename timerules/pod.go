package timerules

import (
	"time"

	"github.com/comtravo/ctparse/artifact"
	"github.com/comtravo/ctparse/rule"
)

func registerPOD(reg *rule.Registry) {
	first := reg.Regex(`(?:erster?|first|earliest|as early|frühe?st(?:ens?)?|so früh)(?:\s+(?:as\s+)?possible|\s+(?:wie\s+)?möglich(?:er?)?)?`)
	reg.Register("rulePODFirst", rule.Pattern{first}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		return artifact.NewTime().WithPOD("first")
	})

	last := reg.Regex(`(?:letzter?|last|latest|as late as possible|spätest möglich(?:er?)?|so spät wie möglich(?:er?)?)`)
	reg.Register("rulePODLast", rule.Pattern{last}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		return artifact.NewTime().WithPOD("last")
	})

	namedPODs := []struct {
		name, pattern, pod string
	}{
		{"rulePODEarlyMorning", `very early|sehr früh`, "earlymorning"},
		{"rulePODMorning", `morning|morgend?s?|(?:in der )?frühe?|early`, "morning"},
		{"rulePODBeforeNoon", `before\s*noon|vor\s*mittags?`, "beforenoon"},
		{"rulePODNoon", `noon|mittags?`, "noon"},
		{"rulePODAfternoon", `afternoon|nachmittags?`, "afternoon"},
		{"rulePODEvening", `evening|late afternoon|abends?`, "evening"},
		{"rulePODNight", `nights?|nachts?`, "night"},
	}
	for _, np := range namedPODs {
		np := np
		atom := reg.Regex(`(?:` + np.pattern + `)`)
		reg.Register(np.name, rule.Pattern{atom}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
			return artifact.NewTime().WithPOD(np.pod)
		})
	}

	// "early"/"late" (optionally "very") applied to an existing POD
	// artifact, e.g. "very early afternoon". Ported from
	// ruleEarlyLatePOD + _pod_from_match.
	modifier := reg.Regex(`(?<mod_very>(?:sehr|very)\s+)?(?:(?<mod_early>früh(?:er)?|early)|(?<mod_late>spät(?:er)?|late))`)
	reg.Register("ruleEarlyLatePOD", rule.Pattern{modifier, isPOD()}, func(ts time.Time, w []artifact.Artifact) artifact.Artifact {
		m := asRegex(w[0])
		p := asTime(w[1])
		prefix := ""
		if v, ok := m.Group("mod_early"); ok && v != "" {
			if v2, ok2 := m.Group("mod_very"); ok2 && v2 != "" {
				prefix = "veryearly"
			} else {
				prefix = "early"
			}
		} else if v, ok := m.Group("mod_late"); ok && v != "" {
			if v2, ok2 := m.Group("mod_very"); ok2 && v2 != "" {
				prefix = "verylate"
			} else {
				prefix = "late"
			}
		} else {
			return nil
		}
		return artifact.NewTime().WithPOD(prefix + p.POD)
	})
}
