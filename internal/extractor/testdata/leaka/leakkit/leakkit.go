package leakkit

const Name = "leak"
