// Package theme defines the two immutable token tables every visual component
// indexes into, plus the lipgloss style sheet derived from them.
//
// Integration example:
//
//	tokens := theme.TokensFor(theme.Dark)
//	styles := theme.NewStyles(renderer, tokens)
//	header := styles.Heading.Render("My Services")
//	rule := styles.GradientRule(40)
package theme
