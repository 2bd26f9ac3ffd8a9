package broken

var Count int = "three"
