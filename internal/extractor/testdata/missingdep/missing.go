package missingdep

import "nosuchkit"

var Value = nosuchkit.Value
