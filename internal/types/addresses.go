package types

// HardwareAddress is the address of a memory mapped IO register.
// The DMG maps its IO to 0xFF00 - 0xFF7F, with IE living alone
// at 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 selects which half of the joypad matrix is visible and
	// reports the state of the selected keys, 0 meaning pressed.
	//
	//  Bit 5: select action keys    (0=Select)
	//  Bit 4: select direction keys (0=Select)
	//  Bit 3: Down  or Start        (0=Pressed) (Read Only)
	//  Bit 2: Up    or Select       (0=Pressed) (Read Only)
	//  Bit 1: Left  or B            (0=Pressed) (Read Only)
	//  Bit 0: Right or A            (0=Pressed) (Read Only)
	P1 HardwareAddress = 0xFF00
	// SB holds the next byte to be shifted out of the serial port.
	SB HardwareAddress = 0xFF01
	// SC controls the serial port.
	SC HardwareAddress = 0xFF02
	// DIV exposes the upper 8 bits of the 16-bit system counter,
	// which ticks once per machine cycle. Any write clears the
	// whole counter.
	DIV HardwareAddress = 0xFF04
	// TIMA is incremented at the frequency selected by TAC. On
	// overflow it is reloaded from TMA and a timer interrupt is
	// requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the value TIMA is reloaded with when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC controls the timer.
	//
	//  Bit 2:   Timer enable
	//  Bit 1-0: Input clock select
	//           00: 4096 Hz   (every 1024 cycles)
	//           01: 262144 Hz (every 16 cycles)
	//           10: 65536 Hz  (every 64 cycles)
	//           11: 16384 Hz  (every 256 cycles)
	TAC HardwareAddress = 0xFF07
	// IF holds the pending interrupt requests. The upper 3 bits
	// always read as 1.
	//
	//  Bit 0: V-Blank  (INT 40h)
	//  Bit 1: LCD STAT (INT 48h)
	//  Bit 2: Timer    (INT 50h)
	//  Bit 3: Serial   (INT 58h)
	//  Bit 4: Joypad   (INT 60h)
	IF HardwareAddress = 0xFF0F
	// LCDC controls the LCD.
	//
	//  Bit 7: LCD enable                   (0=Off, 1=On)
	//  Bit 6: Window tile map select       (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 5: Window enable                (0=Off, 1=On)
	//  Bit 4: BG & Window tile data select (0=8800-97FF, 1=8000-8FFF)
	//  Bit 3: BG tile map select           (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 2: OBJ size                     (0=8x8, 1=8x16)
	//  Bit 1: OBJ enable                   (0=Off, 1=On)
	//  Bit 0: BG enable                    (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT reports the LCD mode and configures the STAT interrupt
	// sources. Bit 7 always reads as 1.
	//
	//  Bit 6:   LYC=LY interrupt source  (Read/Write)
	//  Bit 5:   OAM interrupt source     (Read/Write)
	//  Bit 4:   V-Blank interrupt source (Read/Write)
	//  Bit 3:   H-Blank interrupt source (Read/Write)
	//  Bit 2:   LYC=LY coincidence       (Read Only)
	//  Bit 1-0: Mode                     (Read Only)
	//           0: H-Blank
	//           1: V-Blank
	//           2: OAM search
	//           3: Pixel transfer
	STAT HardwareAddress = 0xFF41
	// SCY is the vertical scroll of the background.
	SCY HardwareAddress = 0xFF42
	// SCX is the horizontal scroll of the background.
	SCX HardwareAddress = 0xFF43
	// LY is the scanline currently being processed, 0-153. It is
	// read only to the CPU.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY to drive the coincidence flag.
	LYC HardwareAddress = 0xFF45
	// DMA copies 160 bytes from (value << 8) into OAM.
	DMA HardwareAddress = 0xFF46
	// BGP maps background colour indices to shades.
	//
	//  Bit 7-6: Shade for colour 3
	//  Bit 5-4: Shade for colour 2
	//  Bit 3-2: Shade for colour 1
	//  Bit 1-0: Shade for colour 0
	BGP HardwareAddress = 0xFF47
	// OBP0 maps sprite colour indices to shades for palette 0.
	// Colour 0 is transparent, so bits 1-0 are unused.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is the same as OBP0, for sprite palette 1.
	OBP1 HardwareAddress = 0xFF49
	// WY is the first scanline the window is drawn on.
	WY HardwareAddress = 0xFF4A
	// WX is the window column plus 7.
	WX HardwareAddress = 0xFF4B
	// BDIS unmaps the boot image once a non-zero value is written
	// to it. The latch cannot be cleared again.
	BDIS HardwareAddress = 0xFF50
	// IE enables the interrupt sources. Its layout mirrors IF.
	IE HardwareAddress = 0xFFFF
)
