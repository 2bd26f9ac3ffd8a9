package leaka

import "leakkit"

var Value int = leakkit.Name
