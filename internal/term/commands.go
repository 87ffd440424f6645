package term

// CommandID names a fully resolved control/escape/CSI command, the target
// of the command resolver in resolve.go. The vocabulary mirrors the
// DEVCON_CMD_* enum of the driver this core is descended from;
// unrecognized finals resolve to CmdNone. A few ids are defined but not
// returned by any resolver: CmdGraphic, CmdCAN, CmdHVP ('f' resolves to
// CmdCUP), CmdDA2, CmdOSCTitle, CmdLS2, CmdLS3, CmdLS1R, CmdLS2R, CmdLS3R.
type CommandID int

const (
	CmdNone CommandID = iota
	CmdGraphic

	// C0/C1 controls
	CmdBEL
	CmdBS
	CmdCR
	CmdLF
	CmdVT
	CmdFF
	CmdHT
	CmdSO
	CmdSI
	CmdENQ
	CmdCAN
	CmdSUB
	CmdNUL
	CmdDC1
	CmdDC3
	CmdIND
	CmdNEL
	CmdHTS
	CmdRI
	CmdSS2
	CmdSS3
	CmdSPA
	CmdEPA
	CmdDECID
	CmdST

	// Escape sequences (no CSI introducer)
	CmdRIS
	CmdDECSC
	CmdDECRC
	CmdDECALN
	CmdDECANM
	CmdDECKPAM
	CmdDECKPNM
	CmdDECBI
	CmdDECFI
	CmdDECDWL
	CmdDECSWL
	CmdDECDHL_TH
	CmdDECDHL_BH
	CmdSCS
	CmdS7C1T
	CmdS8C1T
	CmdLS2
	CmdLS3
	CmdLS1R
	CmdLS2R
	CmdLS3R

	// Cursor movement
	CmdCUU
	CmdCUD
	CmdCUF
	CmdCUB
	CmdCNL
	CmdCPL
	CmdCHA
	CmdCUP
	CmdHVP
	CmdVPA
	CmdVPR
	CmdHPA
	CmdHPR
	CmdCBT
	CmdCHT
	CmdREP

	// Editing
	CmdICH
	CmdDCH
	CmdIL
	CmdDL
	CmdECH
	CmdED
	CmdEL
	CmdDECSED
	CmdDECSEL

	// Scrolling / margins
	CmdSU
	CmdSD
	CmdDECSTBM
	CmdDECSLRM_OR_SC

	// Tabs
	CmdTBC

	// Modes
	CmdSM_ANSI
	CmdRM_ANSI
	CmdSM_DEC
	CmdRM_DEC
	CmdDECSCL

	// Attributes / reporting
	CmdSGR
	CmdDSR_ANSI
	CmdDSR_DEC
	CmdDA1
	CmdDA2
	CmdDA3
	CmdDECSTR
	CmdDECSCUSR
	CmdDECSCA

	// Title / OSC / xterm extensions (payload discarded; command id kept
	// so Screen can at least recognize the category)
	CmdOSCTitle
	CmdDECRQM_ANSI
	CmdDECRQM_DEC
	CmdXTERM_IHMT
)
