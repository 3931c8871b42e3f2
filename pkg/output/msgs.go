package output

// MsgNoInstances is printed when no chart is live
const MsgNoInstances = "No live charts."
