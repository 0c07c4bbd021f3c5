package constants

const SpeedOfLight float64 = 299792458                 // [m s^-1]
const AtomicMassUnit float64 = 931.4940954             // [MeV / u]
const ElectronMass float64 = 0.000548579909            // [u]
const KiloGaussToTesla = 0.1                           // [T / kG]
const MeterToCentimeter = 100.                         // [cm / m]
const QBrhoToMomentum float64 = SpeedOfLight * 1.e-6   // [MeV c^-1 T^-1 m^-1]
const DegToRad float64 = 3.14159265358979323846 / 180. // [rad / deg]

// LookupMissMass is substituted for any (Z, A) absent from the mass table.
const LookupMissMass float64 = 1. // [MeV]

// UnknownElement is substituted for any Z absent from the element table.
const UnknownElement = "void"
