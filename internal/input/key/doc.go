// Package key provides raw key and modifier types for tracker input routing.
//
// Hosts translate their native keyboard events into Event values and hand
// them to the tracker, which routes each one to exactly one keyboard
// handler. Bindings in configuration files use the specification format
// understood by Parse:
//
//   - Simple keys: "a", "1", "Enter", "Escape", "Tab"
//   - With modifiers: "Ctrl+Home", "Shift+Tab"
//   - Vim-style: "<C-Home>", "<S-Tab>", "<CR>", "<Esc>"
package key
