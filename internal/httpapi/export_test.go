package httpapi

// MsgQuantityRange exposes msgQuantityRange to the external test package.
const MsgQuantityRange = msgQuantityRange
