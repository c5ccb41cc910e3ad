package pipeline

import "strings"

// latexSymbols maps the LaTeX macros rendered as Unicode symbols.
var latexSymbols = map[string]string{
	// Greek
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ε",
	"varepsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ", "iota": "ι",
	"kappa": "κ", "lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ", "pi": "π",
	"rho": "ρ", "sigma": "σ", "tau": "τ", "upsilon": "υ", "phi": "φ",
	"varphi": "φ", "chi": "χ", "psi": "ψ", "omega": "ω",
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ", "Xi": "Ξ",
	"Pi": "Π", "Sigma": "Σ", "Phi": "Φ", "Psi": "Ψ", "Omega": "Ω",

	// Operators and relations
	"sum": "∑", "prod": "∏", "int": "∫", "oint": "∮", "infty": "∞",
	"pm": "±", "mp": "∓", "times": "×", "cdot": "·", "div": "÷",
	"leq": "≤", "le": "≤", "geq": "≥", "ge": "≥", "neq": "≠", "ne": "≠",
	"approx": "≈", "equiv": "≡", "sim": "∼", "propto": "∝",
	"partial": "∂", "nabla": "∇", "sqrt": "√",

	// Arrows
	"to": "→", "rightarrow": "→", "leftarrow": "←", "leftrightarrow": "↔",
	"Rightarrow": "⇒", "Leftarrow": "⇐", "Leftrightarrow": "⇔",
	"implies": "⇒", "iff": "⇔", "mapsto": "↦",

	// Sets and logic
	"in": "∈", "notin": "∉", "subset": "⊂", "subseteq": "⊆", "supset": "⊃",
	"supseteq": "⊇", "cup": "∪", "cap": "∩", "emptyset": "∅",
	"forall": "∀", "exists": "∃", "neg": "¬", "land": "∧", "lor": "∨",

	// Misc
	"circ": "∘", "degree": "°", "angle": "∠", "perp": "⊥", "parallel": "∥",
	"ldots": "…", "cdots": "⋯", "dots": "…",
}

// SubstituteLatex replaces known symbol macros in a LaTeX body with their
// Unicode equivalents. Unknown macros are left as written.
func SubstituteLatex(body string) string {
	if strings.IndexByte(body, '\\') < 0 {
		return body
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		if body[i] != '\\' {
			b.WriteByte(body[i])
			i++
			continue
		}
		j := i + 1
		for j < len(body) && isASCIILetter(body[j]) {
			j++
		}
		if sym, ok := latexSymbols[body[i+1:j]]; ok && j > i+1 {
			b.WriteString(sym)
			i = j
			continue
		}
		if j == i+1 && j < len(body) {
			j++ // \\, \{ and friends stay as a pair
		}
		b.WriteString(body[i:j])
		i = j
	}
	return b.String()
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
