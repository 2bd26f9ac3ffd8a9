package leakb

import "leakkit"

var Value = leakkit.Name
